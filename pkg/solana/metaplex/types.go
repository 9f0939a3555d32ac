package metaplex

import (
	"crypto/ed25519"

	binenc "github.com/tokenops/splforge/pkg/solana/binary"
)

// TokenStandard classifies the asset attached to a mint.
//
// Reference: https://github.com/metaplex-foundation/mpl-token-metadata/blob/main/programs/token-metadata/program/src/state/metadata.rs
type TokenStandard uint8

const (
	TokenStandardNonFungible TokenStandard = iota
	TokenStandardFungibleAsset
	TokenStandardFungible
	TokenStandardNonFungibleEdition
	TokenStandardProgrammableNonFungible
)

// PrintSupply caps how many editions can be printed from a master edition.
type PrintSupply struct {
	tag     uint8
	limited uint64
}

var (
	PrintSupplyZero      = PrintSupply{tag: 0}
	PrintSupplyUnlimited = PrintSupply{tag: 2}
)

// PrintSupplyLimited allows up to n printed editions.
func PrintSupplyLimited(n uint64) PrintSupply {
	return PrintSupply{tag: 1, limited: n}
}

func (p PrintSupply) encode(e *binenc.Encoder) {
	e.Uint8(p.tag)
	if p.tag == 1 {
		e.Uint64(p.limited)
	}
}

// UseMethod describes how asset uses are consumed.
type UseMethod uint8

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

// Uses tracks a consumable-use counter on the asset.
type Uses struct {
	UseMethod UseMethod
	Remaining uint64
	Total     uint64
}

func (u Uses) encode(e *binenc.Encoder) {
	e.Uint8(uint8(u.UseMethod)).Uint64(u.Remaining).Uint64(u.Total)
}

// Creator is one royalty recipient. Shares are percentages summing to 100.
type Creator struct {
	Address  ed25519.PublicKey
	Verified bool
	Share    uint8
}

func (c Creator) encode(e *binenc.Encoder) {
	e.Key(c.Address).Bool(c.Verified).Uint8(c.Share)
}

// Collection links the asset to a collection mint.
type Collection struct {
	Verified bool
	Key      ed25519.PublicKey
}

func (c Collection) encode(e *binenc.Encoder) {
	e.Bool(c.Verified).Key(c.Key)
}

// CollectionDetails marks a mint as a collection parent.
type CollectionDetails struct {
	tag  uint8
	size uint64
}

// CollectionDetailsV1 carries a (deprecated) explicit collection size.
func CollectionDetailsV1(size uint64) CollectionDetails {
	return CollectionDetails{tag: 0, size: size}
}

// CollectionDetailsV2 is the current sizeless form.
func CollectionDetailsV2() CollectionDetails {
	return CollectionDetails{tag: 1}
}

func (c CollectionDetails) encode(e *binenc.Encoder) {
	e.Uint8(c.tag)
	if c.tag == 0 {
		e.Uint64(c.size)
	} else {
		var padding [8]byte
		e.FixedBytes(padding[:])
	}
}

// Data is the mutable metadata content addressed by an update.
type Data struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
}

func (d Data) encode(e *binenc.Encoder) {
	e.String(d.Name).String(d.Symbol).String(d.URI).Uint16(d.SellerFeeBasisPoints)
	encodeCreators(e, d.Creators)
}

// DataV2 extends Data with collection and uses fields, matching the wire
// struct of the older create instructions.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	Collection           *Collection
	Uses                 *Uses
}

func (d DataV2) encode(e *binenc.Encoder) {
	e.String(d.Name).String(d.Symbol).String(d.URI).Uint16(d.SellerFeeBasisPoints)
	encodeCreators(e, d.Creators)

	e.Option(d.Collection != nil)
	if d.Collection != nil {
		d.Collection.encode(e)
	}

	e.Option(d.Uses != nil)
	if d.Uses != nil {
		d.Uses.encode(e)
	}
}

// A nil creator list encodes as Option::None, not an empty vec.
func encodeCreators(e *binenc.Encoder, creators []Creator) {
	e.Option(creators != nil)
	if creators == nil {
		return
	}

	e.Uint32(uint32(len(creators)))
	for _, c := range creators {
		c.encode(e)
	}
}

// toggleState is the three-way state shared by every update toggle: leave
// the field untouched, clear it, or set a new value. The zero value is
// Unchanged, so a builder without an explicit change is a no-op for that
// field. Every toggle is encoded even when Unchanged, since the program
// distinguishes "no instruction sent" from "instruction sent requesting no
// change".
type toggleState uint8

const (
	toggleUnchanged toggleState = iota
	toggleClear
	toggleSet
)

// CollectionToggle updates the asset's collection link.
type CollectionToggle struct {
	state toggleState
	value Collection
}

func ClearCollection() CollectionToggle { return CollectionToggle{state: toggleClear} }

func SetCollection(c Collection) CollectionToggle {
	return CollectionToggle{state: toggleSet, value: c}
}

func (t CollectionToggle) encode(e *binenc.Encoder) {
	e.Uint8(uint8(t.state))
	if t.state == toggleSet {
		t.value.encode(e)
	}
}

// CollectionDetailsToggle updates the collection-parent marker.
type CollectionDetailsToggle struct {
	state toggleState
	value CollectionDetails
}

func ClearCollectionDetails() CollectionDetailsToggle {
	return CollectionDetailsToggle{state: toggleClear}
}

func SetCollectionDetails(d CollectionDetails) CollectionDetailsToggle {
	return CollectionDetailsToggle{state: toggleSet, value: d}
}

func (t CollectionDetailsToggle) encode(e *binenc.Encoder) {
	e.Uint8(uint8(t.state))
	if t.state == toggleSet {
		t.value.encode(e)
	}
}

// UsesToggle updates the consumable-use counter.
type UsesToggle struct {
	state toggleState
	value Uses
}

func ClearUses() UsesToggle { return UsesToggle{state: toggleClear} }

func SetUses(u Uses) UsesToggle { return UsesToggle{state: toggleSet, value: u} }

func (t UsesToggle) encode(e *binenc.Encoder) {
	e.Uint8(uint8(t.state))
	if t.state == toggleSet {
		t.value.encode(e)
	}
}

// RuleSetToggle updates the programmable rule set address.
type RuleSetToggle struct {
	state toggleState
	value ed25519.PublicKey
}

func ClearRuleSet() RuleSetToggle { return RuleSetToggle{state: toggleClear} }

func SetRuleSet(ruleSet ed25519.PublicKey) RuleSetToggle {
	return RuleSetToggle{state: toggleSet, value: ruleSet}
}

func (t RuleSetToggle) encode(e *binenc.Encoder) {
	e.Uint8(uint8(t.state))
	if t.state == toggleSet {
		e.Key(t.value)
	}
}

// PayloadValue is one typed value in an authorization payload.
type PayloadValue interface {
	encode(e *binenc.Encoder)
}

// PayloadPubkey is a 32 byte key payload value.
type PayloadPubkey struct {
	Key ed25519.PublicKey
}

func (v PayloadPubkey) encode(e *binenc.Encoder) {
	e.Uint8(0).Key(v.Key)
}

// PayloadSeeds is a derivation seed list payload value.
type PayloadSeeds struct {
	Seeds [][]byte
}

func (v PayloadSeeds) encode(e *binenc.Encoder) {
	e.Uint8(1).Uint32(uint32(len(v.Seeds)))
	for _, s := range v.Seeds {
		e.Vec(s)
	}
}

// PayloadMerkleProof is a merkle proof payload value.
type PayloadMerkleProof struct {
	Leaf  [32]byte
	Proof [][32]byte
}

func (v PayloadMerkleProof) encode(e *binenc.Encoder) {
	e.Uint8(2).FixedBytes(v.Leaf[:]).Uint32(uint32(len(v.Proof)))
	for _, p := range v.Proof {
		e.FixedBytes(p[:])
	}
}

// PayloadNumber is a u64 payload value.
type PayloadNumber struct {
	Value uint64
}

func (v PayloadNumber) encode(e *binenc.Encoder) {
	e.Uint8(3).Uint64(v.Value)
}

// PayloadEntry is one key/value pair of an authorization payload. Entries
// are encoded in declaration order so repeated builds emit identical
// bytes, unlike a map iteration.
type PayloadEntry struct {
	Key   string
	Value PayloadValue
}

// AuthorizationData carries the payload consulted by an authorization
// rules program.
type AuthorizationData struct {
	Payload []PayloadEntry
}

func (a AuthorizationData) encode(e *binenc.Encoder) {
	e.Uint32(uint32(len(a.Payload)))
	for _, entry := range a.Payload {
		e.String(entry.Key)
		entry.Value.encode(e)
	}
}
