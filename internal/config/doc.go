// Package config loads the hx CLI configuration.
//
// The configuration lives in hx.yaml (or hx.yml, or hx.toml) in the
// working directory. Every field is optional; missing fields take the
// defaults from New.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 3000
//	render:
//	  pretty: false
//	  frameInterval: 16ms
//	  maxPasses: 64
//	demo:
//	  title: hx demo
//	  tickInterval: 1s
//	  throttleInterval: 250ms
//	  ticks: 3
//	metrics:
//	  enabled: true
//	  namespace: hx
//	  path: /metrics
//	log:
//	  level: info
//	  format: text
//
// The TOML form uses the same keys:
//
//	[server]
//	port = 8080
//
//	[demo]
//	tickInterval = "500ms"
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Port:", cfg.Server.Port)
package config
