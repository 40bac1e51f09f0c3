/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.*/

package firestarrutil

import "testing"

func TestNewCfgBuildsCommandTree(t *testing.T) {
	var gotMode string
	cfg := NewCfg(func(cfg *Cfg, mode string, args []string) error {
		gotMode = mode
		return nil
	})

	if cfg.Root == nil {
		t.Fatal("NewCfg did not set Root")
	}
	names := map[string]bool{}
	for _, c := range cfg.Root.Commands() {
		names[c.Name()] = true
	}
	if !names["surface"] || !names["test"] {
		t.Errorf("expected surface and test subcommands, got %v", names)
	}

	cfg.Root.SetArgs([]string{"test", "out"})
	if err := cfg.Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if gotMode != "test" {
		t.Errorf("action invoked with mode %q, want %q", gotMode, "test")
	}
}

func TestNewCfgDefaultFlagValues(t *testing.T) {
	cfg := NewCfg(func(cfg *Cfg, mode string, args []string) error { return nil })
	cfg.Root.SetArgs([]string{"test", "out"})
	if err := cfg.Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := cfg.GetFloat64("confidence"); got != 0.95 {
		t.Errorf("default confidence = %v, want 0.95", got)
	}
	if cfg.GetBool("deterministic") {
		t.Error("deterministic should default to false")
	}
}
