package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var flagParseErrorTests = []struct {
	in     string
	flag   string
	reason string
}{
	{
		"unknown flag: --nope",
		"--nope",
		"Flag %s is missing.",
	},
	{
		"unknown shorthand flag: 'x' in -x",
		"-x",
		"Short flag %s is missing.",
	},
	{
		"flag needs an argument: --wait",
		"--wait",
		"Flag %s needs an argument.",
	},
	{
		"flag needs an argument: 'w' in -w",
		"-w",
		"Flag %s needs an argument.",
	},
	{
		`invalid argument "20dd" for "-w, --wait" flag: time: unknown unit "dd" in duration "20dd"`,
		"-w, --wait",
		"Flag %s has an invalid argument.",
	},
	{
		`invalid argument "nope" for "--dry-run" flag: strconv.ParseBool: parsing "nope": invalid syntax`,
		"--dry-run",
		"Flag %s has an invalid argument.",
	},
	{
		"something odd happened",
		"",
		"something odd happened",
	},
}

func TestFlagParseError(t *testing.T) {
	for _, tf := range flagParseErrorTests {
		t.Run(tf.in, func(t *testing.T) {
			err := newFlagParseError(errors.New(tf.in))
			require.Equal(t, tf.flag, err.Flag())
			require.Equal(t, tf.reason, err.ReasonFormat())
			require.Equal(t, tf.in, err.Error())
		})
	}
}
