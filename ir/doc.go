// Package ir provides the tree representation of JSON-like values operated
// on by the merge engine.
//
// # Node Structure
//
// A Node represents a single value. Nodes can be:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (key-value pairs), array (ordered list)
//
// The Type field indicates which of the payload fields is meaningful.
//
// ## Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Keys occur at
// most once. Key order is kept for encoding but plays no part in Equal.
//
// ## Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a string fallback if neither Int64 nor Float64 can represent it
//
// # Ownership
//
// Containers normally own their children exclusively. A merge configured
// with dup=false stores the source's *Node directly in the target, after
// which the same subtree is reachable from both trees and a mutation through
// either is visible through the other. Use Clone for an independent copy and
// Shares to check whether two trees have any node in common.
//
// # Comparison
//
// Equal is structural equality. Order is the strict ordering used by sorted
// merges: only number/number and string/string pairs are ordered, anything
// else yields an *IncomparableError.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
package ir
