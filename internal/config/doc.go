// Package config loads domtree.yaml, the project configuration of the
// domtree command.
//
// # Configuration File Structure
//
//	render:
//	  pretty: false
//	  indent: "  "
//	  minify: true
//	log:
//	  level: info
//	  development: false
//	css:
//	  file: styles.yaml
//	data:
//	  file: content.yaml
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger, err := cfg.Logger()
package config
