package main

import (
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pModulus, pSalt, pNoCodesDefault = int64(0), "", false
var pHelp, pBase64, pLines, pNoCodes, pQuiet, pStrict, pString, pTime, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	/* Formatting codes are decided before any flag is defined, as the usage strings embed them. */
	pNoCodes = pNoCodesDefault
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	/* Bad flags are reported by program as a usage error rather than exiting from inside pflag. */
	CommandLine.Init(os.Args[0], ContinueOnError)
	Usage = help

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	BoolVarP(&pLines, "lines", "L", false,
		purp+"hash each line of a target as its own password"+zero)

	Int64VarP(&pModulus, "modulus", "m", 65521,
		purp+"set the modulus of the password checksum"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	BoolVar(&pQuiet, "quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	StringVarP(&pSalt, "salt", "S", "",
		purp+"salt every digest with this UTF-8 string"+zero+" (default none)")

	BoolVar(&pStrict, "strict", false,
		purp+"stop at the first target that cannot be hashed"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each target"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

// inputs reports the salt and modulus exactly as given: a flag left off the command line is
// absent, not its zero value.
func inputs() (salt *string, modulus *int64) {
	if CommandLine.Changed("salt") {
		salt = &pSalt
	}
	if CommandLine.Changed("modulus") {
		modulus = &pModulus
	}
	return salt, modulus
}
