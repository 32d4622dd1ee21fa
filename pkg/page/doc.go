// Package page models a host document: a golang.org/x/net/html tree plus the
// URL it was loaded from. It offers the handful of DOM operations fragment
// composition needs (lookup by id or attribute, inner markup replacement,
// inline style edits) without pulling in a selector engine.
package page
