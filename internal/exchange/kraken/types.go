package kraken

import "encoding/json"

// response is the envelope every Kraken endpoint answers with. A
// non-empty error list is a call failure regardless of HTTP status.
type response struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// tickerData is one market's entry in the Ticker result map. Ask and bid
// are arrays of [price, whole lot volume, lot volume].
type tickerData struct {
	Ask []string `json:"a"`
	Bid []string `json:"b"`
}

type openOrdersResult struct {
	Open map[string]orderData `json:"open"`
}

type closedOrdersResult struct {
	Closed map[string]orderData `json:"closed"`
}

// orderData mirrors a single order in the OpenOrders/ClosedOrders
// results. Timestamps are fractional epoch seconds.
type orderData struct {
	Status         string           `json:"status"`
	Reason         string           `json:"reason"`
	OpenTime       json.Number      `json:"opentm"`
	CloseTime      json.Number      `json:"closetm"`
	ExpireTime     json.Number      `json:"expiretm"`
	Volume         string           `json:"vol"`
	ExecutedVolume string           `json:"vol_exec"`
	AveragePrice   string           `json:"price"`
	Description    orderDescription `json:"descr"`
	Trades         []string         `json:"trades"`
}

type orderDescription struct {
	Pair      string `json:"pair"`
	Type      string `json:"type"`
	OrderType string `json:"ordertype"`
	Price     string `json:"price"`
}

type addOrderResult struct {
	Description struct {
		Order string `json:"order"`
	} `json:"descr"`
	TransactionIDs []string `json:"txid"`
}
