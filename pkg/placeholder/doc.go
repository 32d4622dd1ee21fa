// Package placeholder extracts substitution data from a page query string and
// replaces `#{key}` tokens in strings and HTML node trees. Substitution is a
// single literal pass per key; tokens whose key is not present in the data are
// left in place.
package placeholder
