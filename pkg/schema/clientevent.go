package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "product_name", "type": "string"},
		{"name": "at", "type": "long"}
	]
}`

// ClientEventV1 is the wire form of a shopper activity event.
// At is unix milliseconds.
type ClientEventV1 struct {
	EventID     string `avro:"event_id"`
	SessionID   string `avro:"session_id"`
	Kind        string `avro:"kind"`
	ProductID   int64  `avro:"product_id"`
	ProductName string `avro:"product_name"`
	At          int64  `avro:"at"`
}
