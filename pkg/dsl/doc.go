/*
Package dsl provides a fluent Go API for declaring Rewind machine definitions
without a YAML file.

	b := dsl.New().Initial("normal")
	b.Add("normal").On("study", "busy")
	b.Add("busy").On("get_tired", "sleeping").On("get_hungry", "hungry")
	b.Add("hungry").On("eat", "normal")
	b.Add("sleeping").On("get_up", "normal")

	def, err := b.Build()

States keep the order in which they were first added.
*/
package dsl
