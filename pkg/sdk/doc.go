// Package sdk provides a typed Go client for the scryfall-mcp server.
//
// The client wraps mcp-go/client.CallTool with one method per MCP tool,
// connection management, and automatic retry via fortify.
//
// Usage:
//
//	transport, _ := client.NewStdioTransport("scryfall-mcp", "serve")
//	c := sdk.NewClient(transport)
//	defer c.Close()
//
//	info, _ := c.Initialize(ctx)
//	text, _ := c.GetCard(ctx, sdk.GetCardRequest{Name: "Lightning Bolt"})
//	fmt.Println(text)
package sdk
