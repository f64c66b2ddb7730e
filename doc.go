/*
Package fable is a workflow-composition engine: it lets you define a named
sequence of steps (a "story"), each step a unit of business logic reading and
mutating a shared, schema-validated state, and execute the sequence either
blocking or asynchronously with identical step code.

# Concept

A story is declared as an ordered list of step identifiers and bound to its
collaborators at construction: plain functions, suspending (channel-returning)
functions, or other stories nested as sub-sequences. The executor walks the
steps strictly in order against one shared state instance and stops at the
first failure, propagating the error unchanged. State attributes declared in
a schema are validated and normalized on every write; undeclared attributes
pass through untouched. Independent schemas compose with schema.Union.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/fable/pkg/schema"
		"github.com/aretw0/fable/pkg/state"
		"github.com/aretw0/fable/pkg/story"
	)

	func main() {
		contract := schema.MustNew(
			schema.NewVariable("amount", schema.Int()),
			schema.NewVariable("invoice", schema.String()),
		)

		def := story.MustDefine("checkout", "charge", "notify")
		checkout, err := def.Bind(story.Collaborators{
			"charge": func(ctx context.Context, st *state.State) error {
				amount, err := st.Get("amount")
				if err != nil {
					return err
				}
				return st.Set("invoice", chargeCard(amount.(int64)))
			},
			"notify": func(ctx context.Context, st *state.State) error {
				invoice, _ := st.Get("invoice")
				log.Println("charged:", invoice)
				return nil
			},
		})
		if err != nil {
			log.Fatal(err)
		}

		st, err := state.New(contract, map[string]any{"amount": 4200})
		if err != nil {
			log.Fatal(err)
		}
		if err := checkout.Run(context.Background(), st); err != nil {
			log.Fatal(err)
		}
	}

The Engine in this package adds a registry, per-session snapshot persistence
(memory or Redis adapters), Prometheus lifecycle hooks, and a chi HTTP
adapter on top of the core packages.
*/
package fable
