package substrate

import (
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// rpcClient adapts the gsrpc API surface to Client.
type rpcClient struct {
	api *gsrpc.SubstrateAPI
}

func newRPCClient(url string) (*rpcClient, error) {
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, err
	}
	return &rpcClient{api: api}, nil
}

func (c *rpcClient) GetBlockHash(blockNumber uint64) (types.Hash, error) {
	return c.api.RPC.Chain.GetBlockHash(blockNumber)
}

func (c *rpcClient) GetHeaderLatest() (*types.Header, error) {
	return c.api.RPC.Chain.GetHeaderLatest()
}

func (c *rpcClient) GetRuntimeVersionLatest() (*types.RuntimeVersion, error) {
	return c.api.RPC.State.GetRuntimeVersionLatest()
}

func (c *rpcClient) GetMetadataLatest() (*types.Metadata, error) {
	return c.api.RPC.State.GetMetadataLatest()
}

func (c *rpcClient) GetStorageLatest(key types.StorageKey, target interface{}) (bool, error) {
	return c.api.RPC.State.GetStorageLatest(key, target)
}

// SubmitExtrinsic sends an already encoded extrinsic without decoding it again.
func (c *rpcClient) SubmitExtrinsic(raw string) (types.Hash, error) {
	var hash types.Hash
	err := c.api.Client.Call(&hash, "author_submitExtrinsic", raw)
	return hash, err
}
