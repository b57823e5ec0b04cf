package main

import (
	"reflect"
	"testing"
)

func TestSplitConfigFlag(t *testing.T) {
	path, args := splitConfigFlag([]string{"sweep", "--config", "/tmp/a.toml"})
	if path != "/tmp/a.toml" {
		t.Errorf("path: got %s, want /tmp/a.toml", path)
	}
	if !reflect.DeepEqual(args, []string{"sweep"}) {
		t.Errorf("args: got %q, want [sweep]", args)
	}

	path, args = splitConfigFlag([]string{"--config=b.toml", "beacon"})
	if path != "b.toml" {
		t.Errorf("path: got %s, want b.toml", path)
	}
	if !reflect.DeepEqual(args, []string{"beacon"}) {
		t.Errorf("args: got %q, want [beacon]", args)
	}
}

func TestSplitConfigFlag_NoFlag(t *testing.T) {
	path, args := splitConfigFlag([]string{"listen"})
	if path != "" {
		t.Errorf("path: got %s, want empty", path)
	}
	if !reflect.DeepEqual(args, []string{"listen"}) {
		t.Errorf("args: got %q, want [listen]", args)
	}
}

func TestSplitConfigFlag_DanglingFlag(t *testing.T) {
	path, args := splitConfigFlag([]string{"history", "--config"})
	if path != "" {
		t.Errorf("path: got %s, want empty", path)
	}
	if !reflect.DeepEqual(args, []string{"history", "--config"}) {
		t.Errorf("args: got %q", args)
	}
}
