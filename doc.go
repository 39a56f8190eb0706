// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ddnnf defines a concrete type for Decision-DNNF formulas, a
knowledge-compilation representation of propositional logic in which queries
that are intractable on the original formula become polynomial in the size of
the compiled graph: model counting, model enumeration, direct access to the
k-th model, and uniform sampling.

# Basics

A Decision-DNNF is a rooted DAG whose internal nodes are decomposable
conjunctions (children share no variables) and deterministic disjunctions
(branches are pairwise mutually unsatisfiable), and whose leaves are the
constants true and false. Literals do not appear as nodes; they are carried
on edges, as a possibly empty list of propagated literals, in the spirit of
the output of recent versions of the d4 compiler.

A graph is usually obtained by parsing the output of a compiler with ReadD4
(or ReadC2d, ReadBinary) and is immutable afterwards. Variables are numbered
from 1 to Varnum; the number of variables can only be raised, with SetVarnum,
to account for variables that appear in the problem but not in the compiled
formula.

# Queries

All the query engines are read-only over the graph and can therefore be used
from parallel goroutines. Counting relies on arbitrary-precision arithmetic
(package math/big); counts, direct-access indices and sample draws never
truncate to machine words.

	g, err := ddnnf.ReadD4(f)
	if err != nil { ... }
	c := ddnnf.NewCounter(g)
	fmt.Println(c.Count())

Enumeration follows a callback style: the callback receives each model in
turn and enumeration stops as soon as it returns a non-nil error, which
gives the caller a cooperative cancellation point between emissions.

# Structural checks

The decomposability and determinism invariants are not enforced by the
parsers. Function Check verifies them and should be called once after
loading, unless the input is trusted; the result of a query over a graph
that fails these checks is undefined.
*/
package ddnnf
