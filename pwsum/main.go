package main

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"github.com/p7r0x7/pwdigest"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	. "github.com/spf13/pflag"
	"go.uber.org/zap"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, usage = 0, 1, 2

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "pwsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Deterministic, salted password digests.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bLt] [-S <string>] [-m <int>] [--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bt] [-S <string>] [-m <int>] [--quiet|no-codes] [--strict] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for pwdigest: It handles various flags and an unlimited
// number of arguments, hashing strings, files, or the lines within them as passwords.
func program() int {
	if err := CommandLine.Parse(os.Args[1:]); err != nil {
		return usage
	}
	if pHelp || NArg() == 0 {
		help()
		return success
	}

	log := newLogger()
	defer log.Sync()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	salt, modulus := inputs()
	log.Debug("parsed inputs", zap.Bool("salted", salt != nil), zap.Int64p("modulus", modulus),
		zap.Int("targets", NArg()))

	for _, target := range Args() {
		start, delta := time.Now(), ""

		var err error
		var lines []string
		var digest string
		switch {
		case pString:
			digest, err = pwdigest.GetHash(&target, salt, modulus)
		case pLines:
			lines, err = readLines(target)
		default:
			digest, err = hashTarget(target, salt, modulus)
		}
		if err != nil {
			if warn(log, err) {
				return failure
			}
			continue
		}

		var digests []string
		if pLines {
			if digests, err = hashAll(ctx, lines, salt, modulus, runtime.NumCPU()); err != nil {
				warn(log, err)
				return failure
			}
		} else {
			digests = []string{digest}
		}

		if pTime {
			d := time.Since(start)
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = " (" + d.String() + ")"
		}

		for i, d := range digests {
			name := label(target)
			if pLines {
				name = Sprint(name, zero, ":", i+1)
			}
			if pQuiet {
				Print(render(d), n)
			} else {
				Print(yell, render(d), zero, `  `, name, zero, delta, n)
			}
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// hashTarget streams a file, or STDIN, through a Digest; its whole content is the password.
func hashTarget(target string, salt *string, modulus *int64) (string, error) {
	d := pwdigest.New(options(salt, modulus)...)
	if target == "-" || target == os.Stdin.Name() {
		_, err := io.Copy(d, os.Stdin)
		os.Stdin.Close() /* STDIN should not be reused. */
		if err != nil {
			return "", errors.Wrap(err, "reading standard input")
		}
		return hex.EncodeToString(d.Sum(nil)), nil
	}

	file, err := os.Open(target)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", target)
	}
	defer file.Close()
	if _, err = io.Copy(d, file); err != nil {
		return "", errors.Wrapf(err, "reading %s", target)
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// readLines splits a target into passwords, one per line. Line endings, including a carriage
// return before the newline, are not part of the password.
func readLines(target string) ([]string, error) {
	file := os.Stdin
	if target != "-" && target != os.Stdin.Name() {
		var err error
		if file, err = os.Open(target); err != nil {
			return nil, errors.Wrapf(err, "opening %s", target)
		}
	}
	defer file.Close() /* STDIN included, as it should not be reused. */

	var lines []string
	s := bufio.NewScanner(file)
	s.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading lines of %s", target)
	}
	return lines, nil
}

func options(salt *string, modulus *int64) []pwdigest.Option {
	var opts []pwdigest.Option
	if salt != nil {
		opts = append(opts, pwdigest.WithSalt(*salt))
	}
	if modulus != nil {
		opts = append(opts, pwdigest.WithModulus(*modulus))
	}
	return opts
}

func render(digest string) string {
	if !pBase64 {
		return digest
	}
	raw, _ := hex.DecodeString(digest) /* Digests are always valid hex. */
	return base64.StdEncoding.EncodeToString(raw)
}

func label(target string) string {
	switch {
	case pString:
		return Sprint(zero, `"`, target, `"`)
	case pNoCodes:
		return filepath.Clean(target)
	default:
		return und + vainpath.Simplify(target)
	}
}

// warn records a target that could not be hashed, reporting whether the program should stop.
func warn(log *zap.Logger, err error) bool {
	if pStrict {
		log.Error("stopping at first failure", zap.Error(err))
		return true
	}
	log.Warn("skipping target", zap.Error(err))
	warnings++
	return false
}
