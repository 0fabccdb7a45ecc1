package poseidon

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/vocdoni/grantz/util"
)

// MultiPoseidon hashes an arbitrary number of field elements by chunking
// them into groups of 16 and hashing the chunk hashes together.
func MultiPoseidon(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) > 256 {
		return nil, fmt.Errorf("too many inputs")
	} else if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs provided")
	}
	// calculate chunk hashes
	hashes := []*big.Int{}
	chunk := []*big.Int{}
	for _, input := range inputs {
		if len(chunk) == 16 {
			hash, err := poseidon.Hash(chunk)
			if err != nil {
				return nil, err
			}
			hashes = append(hashes, hash)
			chunk = []*big.Int{}
		}
		chunk = append(chunk, input)
	}
	// if the final chunk is not empty, hash it to get the last chunk hash
	if len(chunk) > 0 {
		hash, err := poseidon.Hash(chunk)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	// if there is only one chunk hash, return it
	if len(hashes) == 1 {
		return hashes[0], nil
	}
	// return the hash of all chunk hashes
	return poseidon.Hash(hashes)
}

// byteChunkSize is the number of bytes folded into a single field element.
// 31 bytes always fit below the BN254 scalar field modulus.
const byteChunkSize = 31

// HashBytes hashes an arbitrary byte string by folding it into field
// elements of 31 bytes each and hashing them with MultiPoseidon. The length
// of the input is appended as a final element so that inputs differing only
// in trailing zero bytes hash differently.
func HashBytes(data []byte) (*big.Int, error) {
	inputs := []*big.Int{}
	for start := 0; start < len(data); start += byteChunkSize {
		end := start + byteChunkSize
		if end > len(data) {
			end = len(data)
		}
		inputs = append(inputs, util.BigToFF(new(big.Int).SetBytes(data[start:end])))
	}
	inputs = append(inputs, big.NewInt(int64(len(data))))
	return MultiPoseidon(inputs...)
}
