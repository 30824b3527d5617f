// Assistant is a streaming chat relay.
//
// It accepts POST /chat with a JSON body {"prompt": "..."}, forwards the
// prompt to a chat-completions API with streaming enabled and relays the
// upstream event stream back to the caller chunk by chunk.
//
// Usage:
//
//	# Start the relay with config.yaml (or defaults if it does not exist)
//	assistant run
//
//	# Start with a custom configuration file
//	assistant run --config /etc/assistant/config.yaml
//
//	# Print the resolved configuration
//	assistant validate --output json
//
//	# Show version information
//	assistant version
package main

func main() {
	Execute()
}
