// Package exporter serves assistant state as Prometheus metrics.
//
// Metrics (all gauges):
//
//	vass_up                         1 when the assistant reports "active"
//	vass_input_muted                microphone mute state
//	vass_output_muted               speaker mute state
//	vass_output_volume              speaker volume, 0-100
//	vass_info{name,version,uuid,language,area}
//	vass_scrape_success             1 when the last poll succeeded
//	vass_last_success_timestamp_seconds
//
// The assistant is polled while Prometheus scrapes; a minimum interval can be
// set so frequent scrapes reuse the previous result. /healthz answers 200 only
// while the assistant is running.
package exporter
