package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Grammar recognizes one identifier shape. Matches is a pure predicate and
// Normalize returns the canonical query for any input Matches accepts.
type Grammar struct {
	Kind      Kind
	Matches   func(input string) bool
	Normalize func(input string) (Query, error)
}

var (
	txHashPattern        = regexp.MustCompile(`^(0X)?[A-F0-9]{64}$`)
	blockHeightPattern   = regexp.MustCompile(`^[0-9]{1,20}$`)
	ibcCharsetPattern    = regexp.MustCompile(`^[A-Za-z0-9.\[\]<>_+\-#]{9,64}$`)
	ibcClientSuffix      = regexp.MustCompile(`-[0-9]+$`)
	ibcChannelPattern    = regexp.MustCompile(`^(channel-[0-9]){1,56}$`)
	ibcConnectionPattern = regexp.MustCompile(`^(connection-[0-9]){1,53}$`)
)

// Grammars lists every grammar in classification order.
var Grammars = []Grammar{
	{Kind: KindTxHash, Matches: MatchTxHash, Normalize: NormalizeTxHash},
	{Kind: KindBlockHeight, Matches: MatchBlockHeight, Normalize: NormalizeBlockHeight},
	{Kind: KindIbcClient, Matches: MatchIbcClient, Normalize: NormalizeIbcClient},
	{Kind: KindIbcChannel, Matches: MatchIbcChannel, Normalize: NormalizeIbcChannel},
	{Kind: KindIbcConnection, Matches: MatchIbcConnection, Normalize: NormalizeIbcConnection},
}

// MatchTxHash reports whether input is 64 hex characters with an optional 0x
// prefix, ignoring case.
func MatchTxHash(input string) bool {
	return txHashPattern.MatchString(strings.ToUpper(input))
}

// NormalizeTxHash returns the uppercase hash without its 0X prefix.
func NormalizeTxHash(input string) (Query, error) {
	upper := strings.ToUpper(input)
	if !txHashPattern.MatchString(upper) {
		return nil, fmt.Errorf("hash must be 64 hexadecimal characters with optional 0x prefix")
	}
	return TxHash(strings.TrimPrefix(upper, "0X")), nil
}

// MatchBlockHeight reports whether input is a decimal integer of at most 20
// digits that fits in uint64. The digit cap keeps heights shorter than any
// transaction hash.
func MatchBlockHeight(input string) bool {
	_, err := parseHeight(input)
	return err == nil
}

// NormalizeBlockHeight parses input as a block height.
func NormalizeBlockHeight(input string) (Query, error) {
	height, err := parseHeight(input)
	if err != nil {
		return nil, err
	}
	return BlockHeight(height), nil
}

func parseHeight(input string) (uint64, error) {
	if !blockHeightPattern.MatchString(input) {
		return 0, fmt.Errorf("block height must be a non-negative integer")
	}
	height, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("block height out of range: %w", err)
	}
	return height, nil
}

// MatchIbcClient reports whether input is an IBC client identifier: it does not
// start with "connection" or "channel", is 9 to 64 identifier characters long,
// and ends in "-<digits>". The checks are independent of each other.
func MatchIbcClient(input string) bool {
	if strings.HasPrefix(input, "connection") || strings.HasPrefix(input, "channel") {
		return false
	}
	return ibcCharsetPattern.MatchString(input) && ibcClientSuffix.MatchString(input)
}

// NormalizeIbcClient returns input unchanged as a client id.
func NormalizeIbcClient(input string) (Query, error) {
	if !MatchIbcClient(input) {
		return nil, fmt.Errorf("invalid ibc client id")
	}
	return IbcClientID(input), nil
}

// MatchIbcChannel reports whether input is one or more "channel-<digit>" runs.
func MatchIbcChannel(input string) bool {
	return ibcChannelPattern.MatchString(input)
}

// NormalizeIbcChannel returns input unchanged as a channel id.
func NormalizeIbcChannel(input string) (Query, error) {
	if !MatchIbcChannel(input) {
		return nil, fmt.Errorf("invalid ibc channel id")
	}
	return IbcChannelID(input), nil
}

// MatchIbcConnection reports whether input is one or more "connection-<digit>" runs.
func MatchIbcConnection(input string) bool {
	return ibcConnectionPattern.MatchString(input)
}

// NormalizeIbcConnection returns input unchanged as a connection id.
func NormalizeIbcConnection(input string) (Query, error) {
	if !MatchIbcConnection(input) {
		return nil, fmt.Errorf("invalid ibc connection id")
	}
	return IbcConnectionID(input), nil
}
