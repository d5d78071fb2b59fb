package amqp

import (
	"encoding/json"
	"time"
)

// DatasetRefreshMessage announces that the transaction export was
// re-imported. The server reacts by dropping its loader memo and bundle
// cache; no row data ever travels over the broker.
type DatasetRefreshMessage struct {
	Source    string    `json:"source"`
	Signature string    `json:"signature"`
	RowCount  int       `json:"row_count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDatasetRefreshMessage(source, signature string, rowCount int) *DatasetRefreshMessage {
	return &DatasetRefreshMessage{
		Source:    source,
		Signature: signature,
		RowCount:  rowCount,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DatasetRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetRefreshMessageFromJSON creates a message from JSON bytes.
func DatasetRefreshMessageFromJSON(data []byte) (*DatasetRefreshMessage, error) {
	var msg DatasetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
