// Package ui provides the terminal user interface components for the
// cometblue CLI: styled result boxes, dangerous-operation confirmations,
// an interactive device picker, and a no-echo PIN prompt.
//
// All chrome renders on stderr. Stdout is reserved for formatted command
// output so `cometblue get ... --format json | jq` and
// `eval "$(cometblue ... --format shell-var)"` work as expected.
package ui
