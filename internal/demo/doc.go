// Package demo is a small application built only from the hx APIs.
//
// It has a clock cell ticked from outside the component tree, a click
// counter, a throttled board of recent ticks, a deferred stats panel and a
// widget that fails once the clock passes a threshold. `hx render` mounts
// it headlessly; `hx serve` serves it over a websocket.
package demo
