package prompt

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Value is one answered placeholder.
type Value struct {
	Key   string
	Value string
}

// AskValues asks for a value for each placeholder key, in order. It asks for
// confirmation first and returns nothing when the user declines. Empty
// answers are dropped so the token stays visible in the output.
func AskValues(ctx context.Context, d Driver, keys []string) ([]Value, error) {
	if d == nil || len(keys) == 0 {
		return nil, nil
	}
	ok, err := d.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%d placeholder(s) have no value. Fill them in?", len(keys)),
		Default: true,
	})
	if err != nil || !ok {
		return nil, err
	}

	var out []Value
	for _, key := range keys {
		answer, err := d.Input(ctx, InputConfig{
			Message: "#{" + key + "}",
			Help:    "Value substituted for the placeholder; leave empty to skip.",
		})
		if err != nil {
			return nil, err
		}
		if answer == "" {
			continue
		}
		out = append(out, Value{Key: key, Value: answer})
	}
	if len(out) > 0 {
		if err := d.Info(ctx, fmt.Sprintf("Composing again with %d value(s).", len(out))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendQuery appends the answered values to rawQuery, escaping them the way
// a form submission would.
func AppendQuery(rawQuery string, values []Value) string {
	parts := make([]string, 0, len(values)+1)
	if rawQuery = strings.TrimPrefix(rawQuery, "?"); rawQuery != "" {
		parts = append(parts, rawQuery)
	}
	for _, v := range values {
		parts = append(parts, url.QueryEscape(v.Key)+"="+url.QueryEscape(v.Value))
	}
	return strings.Join(parts, "&")
}
