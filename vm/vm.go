// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"

	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/state/metadata"
	"github.com/ava-labs/hypersdk/vm"
	"github.com/ava-labs/hypersdk/vm/defaultvm"

	"github.com/yapdotfun/predictionvm/actions"
	"github.com/yapdotfun/predictionvm/controller"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[codec.Typed]

	AuthProvider *auth.AuthProvider

	Parser *chain.TxTypeParser
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[codec.Typed]()
	AuthProvider = auth.NewAuthProvider()

	if err := auth.WithDefaultPrivateKeyFactories(AuthProvider); err != nil {
		panic(err)
	}

	if err := errors.Join(
		// Registration order must follow the type IDs in consts.
		ActionParser.Register(&actions.CreateMarket{}, actions.UnmarshalCreateMarket),
		ActionParser.Register(&actions.Buy{}, actions.UnmarshalBuy),
		ActionParser.Register(&actions.Sell{}, actions.UnmarshalSell),
		ActionParser.Register(&actions.Close{}, actions.UnmarshalClose),
		ActionParser.Register(&actions.Claim{}, actions.UnmarshalClaim),

		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),
		AuthParser.Register(&auth.SECP256R1{}, auth.UnmarshalSECP256R1),
		AuthParser.Register(&auth.BLS{}, auth.UnmarshalBLS),

		OutputParser.Register(&actions.MarketInitializedEvent{}, actions.UnmarshalMarketInitializedEvent),
		OutputParser.Register(&actions.BuyResult{}, actions.UnmarshalBuyResult),
		OutputParser.Register(&actions.SellResult{}, actions.UnmarshalSellResult),
		OutputParser.Register(&actions.MarketClosedEvent{}, actions.UnmarshalMarketClosedEvent),
		OutputParser.Register(&actions.ClaimResult{}, actions.UnmarshalClaimResult),
	); err != nil {
		panic(err)
	}

	Parser = chain.NewTxTypeParser(ActionParser, AuthParser)
}

// New returns a VM with the specified options
func New(options ...vm.Option) (*vm.VM, error) {
	factory := NewFactory()
	return factory.New(options...)
}

func NewFactory() *vm.Factory {
	options := defaultvm.NewDefaultOptions()
	return vm.NewFactory(
		&genesis.DefaultGenesisFactory{},
		controller.New(),
		metadata.NewDefaultManager(),
		ActionParser,
		AuthParser,
		OutputParser,
		auth.DefaultEngines(),
		options...,
	)
}
