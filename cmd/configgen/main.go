package main

import (
	"flag"
	"log"

	"github.com/danmuck/ghcbctl/internal/config"
)

func main() {
	kind := flag.String("kind", "inspect", "config kind: inspect|scenario")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			switch *kind {
			case "inspect":
				path = "cmd/inspectctl/config.toml"
			case "scenario":
				path = "cmd/ghcbctl/scenario.toml"
			default:
				log.Fatalf("unknown kind: %s", *kind)
			}
		}

		switch *kind {
		case "inspect":
			if _, err := config.LoadInspectConfig(path); err != nil {
				log.Fatal(err)
			}
		case "scenario":
			if _, err := config.LoadScenario(path); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		switch *kind {
		case "inspect":
			target = "cmd/inspectctl/config.toml"
		case "scenario":
			target = "cmd/ghcbctl/scenario.toml"
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
