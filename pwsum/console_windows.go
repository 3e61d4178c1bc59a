//go:build windows

package main

import (
	"golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func init() {
	if !enableVirtualTerminal(os.Stdout, os.Stderr) {
		pNoCodesDefault = true
	}
}

// enableVirtualTerminal asks each console to interpret ANSI escape sequences, reporting whether all
// of them agreed. Redirected handles are not consoles and always refuse.
func enableVirtualTerminal(files ...*os.File) bool {
	for _, f := range files {
		h, mode := windows.Handle(f.Fd()), uint32(0)
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			return false
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			continue
		}
		if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			return false
		}
	}
	return true
}
