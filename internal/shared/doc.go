// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides the log capture handler and the
// trade data fixtures used by package tests.
package shared
