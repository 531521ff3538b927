package postgres

import (
	sq "github.com/Masterminds/squirrel"
)

// Queries read the CometBFT psql indexer schema (blocks, tx_results, events,
// attributes). Every lookup returns a single json value cast to text, or no
// row / NULL when the record does not exist.

// Attribute rows of one block's block-level events. The "block" marker row
// carries created_at and tx_hashes; NULL when the height is unknown.
const blockRowsSQL = `
SELECT CASE WHEN EXISTS (SELECT 1 FROM blocks WHERE height = $1) THEN (
	SELECT COALESCE(json_agg(json_build_object(
		'type', r.type,
		'key', r.key,
		'value', r.value,
		'created_at', r.created_at,
		'tx_hashes', r.tx_hashes
	) ORDER BY r.event_rowid), '[]'::json)
	FROM (
		SELECT
			e.rowid AS event_rowid,
			e.type,
			a.key,
			a.value,
			CASE WHEN e.type = 'block' THEN b.created_at END AS created_at,
			CASE WHEN e.type = 'block' THEN txs.hashes END AS tx_hashes
		FROM blocks b
		JOIN events e ON e.block_id = b.rowid AND e.tx_id IS NULL
		JOIN attributes a ON a.event_id = e.rowid
		LEFT JOIN LATERAL (
			SELECT array_agg(tr.tx_hash ORDER BY tr.index) AS hashes
			FROM tx_results tr
			WHERE tr.block_id = b.rowid
		) txs ON true
		WHERE b.height = $1
	) r
)::text END`

// One transaction with its attributes grouped per event type, types in
// first-seen order.
const transactionRowSQL = `
WITH tx AS (
	SELECT tr.rowid, tr.tx_hash, tr.created_at, b.height
	FROM tx_results tr
	LEFT JOIN blocks b ON b.rowid = tr.block_id
	WHERE tr.tx_hash = $1
	ORDER BY tr.rowid
	LIMIT 1
),
events_by_type AS (
	SELECT
		e.type,
		MIN(e.rowid) AS first_rowid,
		json_agg(json_build_object('key', a.key, 'value', a.value) ORDER BY e.rowid) AS attrs
	FROM tx
	JOIN events e ON e.tx_id = tx.rowid
	JOIN attributes a ON a.event_id = e.rowid
	GROUP BY e.type
)
SELECT json_build_object(
	'tx_hash', tx.tx_hash,
	'height', tx.height,
	'created_at', tx.created_at,
	'events', COALESCE((
		SELECT json_agg(json_build_object('type', ebt.type, 'attributes', ebt.attrs) ORDER BY ebt.first_rowid)
		FROM events_by_type ebt
	), '[]'::json)
)::text
FROM tx`

// Latest create_client/update_client event per client id.
const clientStatesSQL = `
SELECT DISTINCT ON (a.value)
	a.value AS client_id,
	b.height AS block_id,
	(SELECT ch.value FROM attributes ch WHERE ch.event_id = e.rowid AND ch.key = 'consensus_height') AS consensus_height,
	b.created_at AS last_updated_at
FROM events e
JOIN attributes a ON a.event_id = e.rowid AND a.key = 'client_id'
JOIN blocks b ON b.rowid = e.block_id
WHERE e.type IN ('create_client', 'update_client')
ORDER BY a.value, e.rowid DESC`

var clientStatesTable = "(" + clientStatesSQL + ") c"

const ibcClientSQL = `
WITH client AS (` + clientStatesSQL + `
),
recent AS (
	SELECT tr.tx_hash, MAX(e.rowid) AS last_rowid
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid AND a.key = 'client_id' AND a.value = $1
	JOIN tx_results tr ON tr.rowid = e.tx_id
	GROUP BY tr.tx_hash
	ORDER BY last_rowid DESC
	LIMIT 10
)
SELECT json_build_object(
	'client_id', c.client_id,
	'block_id', c.block_id,
	'consensus_height', c.consensus_height,
	'last_updated_at', c.last_updated_at,
	'recent_txs', COALESCE((SELECT json_agg(r.tx_hash ORDER BY r.last_rowid DESC) FROM recent r), '[]'::json)
)::text
FROM client c
WHERE c.client_id = $1`

// Channel handshake events name the connection; the connection handshake
// names the client on both ends.
const ibcChannelSQL = `
WITH channel AS (
	SELECT e.rowid, e.block_id
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid AND a.key = 'channel_id' AND a.value = $1
	WHERE e.type LIKE 'channel_open_%'
	ORDER BY e.rowid DESC
	LIMIT 1
),
channel_conn AS (
	SELECT ca.value AS connection_id
	FROM channel
	JOIN attributes ca ON ca.event_id = channel.rowid AND ca.key = 'connection_id'
),
conn AS (
	SELECT e.rowid
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid AND a.key = 'connection_id'
	WHERE e.type LIKE 'connection_open_%' AND a.value = (SELECT connection_id FROM channel_conn)
	ORDER BY e.rowid DESC
	LIMIT 1
),
conn_clients AS (
	SELECT
		(SELECT v.value FROM attributes v WHERE v.event_id = conn.rowid AND v.key = 'client_id') AS client_id,
		(SELECT v.value FROM attributes v WHERE v.event_id = conn.rowid AND v.key = 'counterparty_client_id') AS counterparty_client_id
	FROM conn
),
client AS (` + clientStatesSQL + `
),
recent AS (
	SELECT tr.tx_hash, MAX(e.rowid) AS last_rowid
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid
		AND a.key IN ('channel_id', 'packet_src_channel', 'packet_dst_channel')
		AND a.value = $1
	JOIN tx_results tr ON tr.rowid = e.tx_id
	GROUP BY tr.tx_hash
	ORDER BY last_rowid DESC
	LIMIT 10
)
SELECT json_build_object(
	'channel_id', $1::text,
	'connection_id', (SELECT connection_id FROM channel_conn),
	'client_id', cc.client_id,
	'block_id', (SELECT b.height FROM blocks b WHERE b.rowid = channel.block_id),
	'consensus_height', (SELECT c.consensus_height FROM client c WHERE c.client_id = cc.client_id),
	'counterparty_client_id', cc.counterparty_client_id,
	'recent_txs', COALESCE((SELECT json_agg(r.tx_hash ORDER BY r.last_rowid DESC) FROM recent r), '[]'::json)
)::text
FROM channel
LEFT JOIN conn_clients cc ON true`

const ibcConnectionSQL = `
WITH conn AS (
	SELECT e.rowid, e.block_id
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid AND a.key = 'connection_id' AND a.value = $1
	WHERE e.type LIKE 'connection_open_%'
	ORDER BY e.rowid DESC
	LIMIT 1
),
channels AS (
	SELECT ch.value AS channel_id, MIN(e.rowid) AS first_rowid
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid AND a.key = 'connection_id' AND a.value = $1
	JOIN attributes ch ON ch.event_id = e.rowid AND ch.key = 'channel_id'
	WHERE e.type LIKE 'channel_open_%'
	GROUP BY ch.value
),
recent AS (
	SELECT tr.tx_hash, MAX(e.rowid) AS last_rowid
	FROM events e
	JOIN attributes a ON a.event_id = e.rowid
		AND a.key IN ('connection_id', 'packet_connection')
		AND a.value = $1
	JOIN tx_results tr ON tr.rowid = e.tx_id
	GROUP BY tr.tx_hash
	ORDER BY last_rowid DESC
	LIMIT 10
)
SELECT json_build_object(
	'connection_id', $1::text,
	'client_id', (SELECT v.value FROM attributes v WHERE v.event_id = conn.rowid AND v.key = 'client_id'),
	'counterparty_client_id', (SELECT v.value FROM attributes v WHERE v.event_id = conn.rowid AND v.key = 'counterparty_client_id'),
	'counterparty_connection_id', (SELECT v.value FROM attributes v WHERE v.event_id = conn.rowid AND v.key = 'counterparty_connection_id'),
	'block_id', (SELECT b.height FROM blocks b WHERE b.rowid = conn.block_id),
	'channels', COALESCE((SELECT json_agg(c.channel_id ORDER BY c.first_rowid) FROM channels c), '[]'::json),
	'recent_txs', COALESCE((SELECT json_agg(r.tx_hash ORDER BY r.last_rowid DESC) FROM recent r), '[]'::json)
)::text
FROM conn`

const latestHeightSQL = `SELECT COALESCE(MAX(height), 0) FROM blocks`

var clientEventTypes = []string{"create_client", "update_client"}

const (
	blocksPageColumn = `COALESCE(json_agg(json_build_object(
	'height', p.height,
	'created_at', p.created_at
) ORDER BY p.height DESC), '[]'::json)::text`

	ibcClientsPageColumn = `COALESCE(json_agg(json_build_object(
	'client_id', p.client_id,
	'block_id', p.block_id,
	'consensus_height', p.consensus_height,
	'last_updated_at', p.last_updated_at
) ORDER BY p.block_id DESC, p.client_id), '[]'::json)::text`
)

func blocksPageQuery(limit, offset uint64) (string, []interface{}, error) {
	page := sq.Select("b.height", "b.created_at").
		From("blocks b").
		OrderBy("b.height DESC").
		Limit(limit).
		Offset(offset)

	return sq.Select(blocksPageColumn).
		FromSelect(page, "p").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func blocksCountQuery() (string, []interface{}, error) {
	return sq.Select("COUNT(*)").
		From("blocks").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func ibcClientsPageQuery(limit, offset uint64) (string, []interface{}, error) {
	page := sq.Select("c.client_id", "c.block_id", "c.consensus_height", "c.last_updated_at").
		From(clientStatesTable).
		OrderBy("c.block_id DESC", "c.client_id").
		Limit(limit).
		Offset(offset)

	return sq.Select(ibcClientsPageColumn).
		FromSelect(page, "p").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func ibcClientsCountQuery() (string, []interface{}, error) {
	return sq.Select("COUNT(DISTINCT a.value)").
		From("events e").
		Join("attributes a ON a.event_id = e.rowid AND a.key = 'client_id'").
		Where(sq.Eq{"e.type": clientEventTypes}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
