package main

import (
	"regexp"
	"time"

	"github.com/caarlos0/duration"
)

var flagErrPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`^flag needs an argument: '.' in (-\w)$`), "Flag %s needs an argument."},
	{regexp.MustCompile(`^flag needs an argument: (--\S+)$`), "Flag %s needs an argument."},
	{regexp.MustCompile(`^unknown flag: (\S+)$`), "Flag %s is missing."},
	{regexp.MustCompile(`^unknown shorthand flag: '.' in (-\w)$`), "Short flag %s is missing."},
	{regexp.MustCompile(`^invalid argument ".*" for "(.*)" flag: .*$`), "Flag %s has an invalid argument."},
}

func newFlagParseError(err error) flagParseError {
	s := err.Error()
	for _, p := range flagErrPatterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			return flagParseError{err: err, reason: p.reason, flag: m[1]}
		}
	}
	return flagParseError{err: err, reason: s}
}

type flagParseError struct {
	err    error
	reason string
	flag   string
}

func (f flagParseError) Error() string {
	return f.err.Error()
}

func (f flagParseError) ReasonFormat() string {
	return f.reason
}

func (f flagParseError) Flag() string {
	return f.flag
}

func newDurationFlag(val time.Duration, p *time.Duration) *durationFlag {
	*p = val
	return (*durationFlag)(p)
}

type durationFlag time.Duration

func (d *durationFlag) Set(s string) error {
	v, err := duration.Parse(s)
	*d = durationFlag(v)
	//nolint: wrapcheck
	return err
}

func (d *durationFlag) String() string {
	return time.Duration(*d).String()
}

func (*durationFlag) Type() string {
	return "duration"
}
