// Package wallet derives the receiving wallet provisioned for a university at
// approval time. Derivation is BIP39 entropy -> mnemonic -> seed, then a
// hardened path down to a single keypair whose public key yields the bech32
// receiving address. Generation is one-shot and side-effect free: no network,
// no disk.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
)

const (
	// entropyBits yields a 24-word mnemonic.
	entropyBits = 256

	// AddressPrefix is the human-readable part of every receiving address.
	AddressPrefix = "addr"
)

// DerivationPath is the fixed account path: purpose 1852', coin 1815',
// account 0', external chain, index 0. One receiving address per university.
type DerivationPath struct {
	Purpose      uint32
	CoinType     uint32
	Account      uint32
	Change       uint32
	AddressIndex uint32
}

func defaultPath() DerivationPath {
	return DerivationPath{Purpose: 1852, CoinType: 1815, Account: 0, Change: 0, AddressIndex: 0}
}

func (dp DerivationPath) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", dp.Purpose, dp.CoinType, dp.Account, dp.Change, dp.AddressIndex)
}

type Wallet struct {
	Mnemonic   string
	PrivateKey string
	PublicKey  string
	Address    string
}

// Generate creates a wallet from fresh entropy. Distinct calls produce
// cryptographically independent wallets; any derivation error fails the whole
// operation rather than returning a partial wallet.
func Generate() (*Wallet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("generating entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("deriving mnemonic: %w", err)
	}

	return FromMnemonic(mnemonic)
}

// FromMnemonic re-derives the wallet for an existing mnemonic. Used for
// recovery: the same mnemonic always yields the same keys and address.
func FromMnemonic(mnemonic string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("deriving master key: %w", err)
	}

	addressKey, err := deriveKey(masterKey, defaultPath())
	if err != nil {
		return nil, err
	}

	privKey, err := addressKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extracting private key: %w", err)
	}
	pubKey, err := addressKey.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("extracting public key: %w", err)
	}

	pubKeyBytes := pubKey.SerializeCompressed()
	address, err := addressFromPublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Mnemonic:   mnemonic,
		PrivateKey: hex.EncodeToString(privKey.Serialize()),
		PublicKey:  hex.EncodeToString(pubKeyBytes),
		Address:    address,
	}, nil
}

func deriveKey(masterKey *hdkeychain.ExtendedKey, path DerivationPath) (*hdkeychain.ExtendedKey, error) {
	purpose, err := masterKey.Derive(hdkeychain.HardenedKeyStart + path.Purpose)
	if err != nil {
		return nil, fmt.Errorf("deriving purpose: %w", err)
	}

	coinType, err := purpose.Derive(hdkeychain.HardenedKeyStart + path.CoinType)
	if err != nil {
		return nil, fmt.Errorf("deriving coin type: %w", err)
	}

	account, err := coinType.Derive(hdkeychain.HardenedKeyStart + path.Account)
	if err != nil {
		return nil, fmt.Errorf("deriving account: %w", err)
	}

	change, err := account.Derive(path.Change)
	if err != nil {
		return nil, fmt.Errorf("deriving change: %w", err)
	}

	addressKey, err := change.Derive(path.AddressIndex)
	if err != nil {
		return nil, fmt.Errorf("deriving address index: %w", err)
	}

	return addressKey, nil
}

// addressFromPublicKey hashes the compressed public key and bech32-encodes
// the first 20 bytes under the chain prefix.
func addressFromPublicKey(pubKey []byte) (string, error) {
	hash := sha256.Sum256(pubKey)

	converted, err := bech32.ConvertBits(hash[:20], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("converting address bits: %w", err)
	}

	address, err := bech32.Encode(AddressPrefix, converted)
	if err != nil {
		return "", fmt.Errorf("encoding address: %w", err)
	}
	return address, nil
}
