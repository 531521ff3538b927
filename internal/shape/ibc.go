package shape

import (
	"explorerScope/internal/model"
)

// IbcClient decodes a single client object.
func IbcClient(body []byte) (model.IbcClient, error) {
	root, err := parseRoot(body, false)
	if err != nil {
		return model.IbcClient{}, err
	}
	obj := object{res: root}

	var client model.IbcClient
	if client.ClientID, err = obj.String("client_id"); err != nil {
		return model.IbcClient{}, err
	}
	if client.BlockID, err = obj.Uint("block_id"); err != nil {
		return model.IbcClient{}, err
	}
	if client.ConsensusHeight, err = obj.NullableString("consensus_height"); err != nil {
		return model.IbcClient{}, err
	}
	if client.LastUpdatedAt, err = obj.Time("last_updated_at"); err != nil {
		return model.IbcClient{}, err
	}
	if client.RecentTxs, err = obj.Strings("recent_txs"); err != nil {
		return model.IbcClient{}, err
	}
	return client, nil
}

// IbcClientSummaries decodes a page of the IBC clients list.
func IbcClientSummaries(body []byte) ([]model.IbcClientSummary, error) {
	root, err := parseRoot(body, true)
	if err != nil {
		return nil, err
	}
	items := root.Array()
	out := make([]model.IbcClientSummary, 0, len(items))
	for i, item := range items {
		obj, err := newObject(item, elementPath("clients", i))
		if err != nil {
			return nil, err
		}
		var summary model.IbcClientSummary
		if summary.ClientID, err = obj.String("client_id"); err != nil {
			return nil, err
		}
		if summary.BlockID, err = obj.Uint("block_id"); err != nil {
			return nil, err
		}
		if summary.ConsensusHeight, err = obj.NullableString("consensus_height"); err != nil {
			return nil, err
		}
		if summary.LastUpdatedAt, err = obj.Time("last_updated_at"); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// IbcChannel decodes a channel object and its recent transactions.
func IbcChannel(body []byte) (model.IbcChannel, error) {
	root, err := parseRoot(body, false)
	if err != nil {
		return model.IbcChannel{}, err
	}
	obj := object{res: root}

	var channel model.IbcChannel
	if channel.ChannelID, err = obj.String("channel_id"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.ConnectionID, err = obj.String("connection_id"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.ClientID, err = obj.String("client_id"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.BlockID, err = obj.NullableUint("block_id"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.ConsensusHeight, err = obj.NullableString("consensus_height"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.CounterpartyClientID, err = obj.NullableString("counterparty_client_id"); err != nil {
		return model.IbcChannel{}, err
	}
	if channel.RecentTxs, err = obj.Strings("recent_txs"); err != nil {
		return model.IbcChannel{}, err
	}
	return channel, nil
}

// IbcConnection decodes a connection object with its channels and recent transactions.
func IbcConnection(body []byte) (model.IbcConnection, error) {
	root, err := parseRoot(body, false)
	if err != nil {
		return model.IbcConnection{}, err
	}
	obj := object{res: root}

	var conn model.IbcConnection
	if conn.ConnectionID, err = obj.String("connection_id"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.ClientID, err = obj.String("client_id"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.CounterpartyClientID, err = obj.NullableString("counterparty_client_id"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.CounterpartyConnectionID, err = obj.NullableString("counterparty_connection_id"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.BlockID, err = obj.NullableUint("block_id"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.Channels, err = obj.Strings("channels"); err != nil {
		return model.IbcConnection{}, err
	}
	if conn.RecentTxs, err = obj.Strings("recent_txs"); err != nil {
		return model.IbcConnection{}, err
	}
	return conn, nil
}
