//go:build !windows

package compiler

import "os/exec"

func hideWindow(*exec.Cmd) {}
