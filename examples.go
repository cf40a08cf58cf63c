package main

import (
	"math/rand"
)

var examples = map[string]string{
	"Set up a fresh proxy":               `litellmctl wizard`,
	"Check the config without starting":  `litellmctl validate`,
	"Validate and run in the foreground": `litellmctl start`,
	"See whether everything would work":  `litellmctl start --dry-run`,
	"Wait for the proxy to come up":      `litellmctl status --wait 1m`,
	"Run a project from another folder":  `litellmctl -C ~/proxies/staging start`,
	"Keep it running across logins":      `litellmctl service install`,
}

func randomExample() (string, string) {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	desc := keys[rand.Intn(len(keys))]
	return desc, examples[desc]
}
