package substrate

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Client . Client
type Client interface {
	GetBlockHash(blockNumber uint64) (types.Hash, error)
	GetHeaderLatest() (*types.Header, error)
	GetRuntimeVersionLatest() (*types.RuntimeVersion, error)
	GetMetadataLatest() (*types.Metadata, error)
	GetStorageLatest(key types.StorageKey, target interface{}) (bool, error)
	SubmitExtrinsic(raw string) (types.Hash, error)
}
