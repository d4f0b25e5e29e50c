package models

import "time"

// DailyClose is one (ticker, date, close) row of the price store. Date is
// midnight UTC of the trading day.
type DailyClose struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
}

// Panel is a dense date-by-ticker grid of closing prices. Missing entries
// hold zero with Present false, so callers can tell a real zero apart from
// an absent price.
type Panel struct {
	Dates   []time.Time
	Tickers []string
	Close   [][]float64 // [dateIdx][tickerIdx]
	Present [][]bool
}

// NewPanel allocates an empty panel over the given dates and tickers.
func NewPanel(dates []time.Time, tickers []string) *Panel {
	closes := make([][]float64, len(dates))
	present := make([][]bool, len(dates))
	for i := range dates {
		closes[i] = make([]float64, len(tickers))
		present[i] = make([]bool, len(tickers))
	}
	return &Panel{
		Dates:   dates,
		Tickers: tickers,
		Close:   closes,
		Present: present,
	}
}

// Set stores a close for the given date and ticker index.
func (p *Panel) Set(dateIdx, tickerIdx int, close float64) {
	p.Close[dateIdx][tickerIdx] = close
	p.Present[dateIdx][tickerIdx] = true
}
