// Package lpmodel defines the black-box LP/MIP engine capability set
// required by column generation and branch-and-bound (variable creation,
// row/coefficient editing, solve, primal/dual retrieval, a linear-
// relaxation mode) as the Engine interface, and provides GonumEngine, a
// concrete implementation over gonum's dense simplex solver.
//
// The interface is independent of gonum so a different backend can be
// substituted without touching colgen or branch.
package lpmodel
