package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://muurk.github.io/vassapi/

// GettingStarted is the quick start guide for connecting vassctl to an assistant.
const GettingStarted = "https://muurk.github.io/vassapi/getting-started/"

// TokenSetup explains where the assistant's API token is configured.
const TokenSetup = "https://muurk.github.io/vassapi/getting-started/token/"

// TroubleshootingGuide provides solutions to common connection issues.
const TroubleshootingGuide = "https://muurk.github.io/vassapi/troubleshooting/"

// ExporterGuide covers running vassctl as a Prometheus exporter.
const ExporterGuide = "https://muurk.github.io/vassapi/exporter/"
