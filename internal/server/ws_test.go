package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSearch(t *testing.T) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t, Config{}).Router())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/search"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) searchMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg searchMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSearchSocket(t *testing.T) {
	conn := dialSearch(t)

	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 1, Query: "storage"}))
	first := readMessage(t, conn)
	assert.Equal(t, "results", first.Type)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, "storage", first.Query)
	assert.NotEmpty(t, first.SessionID)
	assert.Len(t, first.Results, 4)

	// A repeated sequence is stale and gets no answer; the next reply
	// belongs to seq 3.
	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 1, Query: "proxy"}))
	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 3, Query: "slots", Section: "proxies"}))
	next := readMessage(t, conn)
	assert.Equal(t, int64(3), next.Seq)
	assert.Equal(t, first.SessionID, next.SessionID)
	require.Len(t, next.Results, 2)
	assert.Equal(t, "proxies-storage", next.Results[0].ID)

	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 2, Query: "storage"}))
	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 4, Query: "   "}))
	blank := readMessage(t, conn)
	assert.Equal(t, int64(4), blank.Seq)
	assert.Empty(t, blank.Results)
}

func TestSearchSocketErrors(t *testing.T) {
	conn := dialSearch(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "invalid message format", msg.Error)

	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 1, Query: "x", Section: "bogus"}))
	msg = readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, int64(1), msg.Seq)

	// The rejected message did not consume the sequence.
	require.NoError(t, conn.WriteJSON(searchRequest{Seq: 1, Query: "storage"}))
	msg = readMessage(t, conn)
	assert.Equal(t, "results", msg.Type)
}
