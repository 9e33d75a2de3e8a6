package indexer

const heightQuery = `query Height {
  squidStatus {
    height
  }
}`

// Pages are cut with limit/offset, so every orderBy ends on the unique id.
// Without it rows tied on blockNumber may shift between pages.
const evmOutgoingQuery = `query Outgoing($address: String!, $from: Int!, $to: Int!, $limit: Int!, $offset: Int!) {
  transactions(
    where: {from_eq: $address, blockNumber_gt: $from, blockNumber_lte: $to}
    orderBy: [blockNumber_ASC, nonce_ASC, id_ASC]
    limit: $limit
    offset: $offset
  ) {
    hash
    blockNumber
    from
    to
    value
    nonce
    status
  }
}`

const evmIncomingQuery = `query Incoming($address: String!, $from: Int!, $to: Int!, $limit: Int!, $offset: Int!) {
  transactions(
    where: {to_eq: $address, blockNumber_gt: $from, blockNumber_lte: $to}
    orderBy: [blockNumber_ASC, id_ASC]
    limit: $limit
    offset: $offset
  ) {
    hash
    blockNumber
    from
    to
    value
    nonce
    status
  }
}`

const substrateTransfersQuery = `query Transfers($address: String!, $from: Int!, $to: Int!, $type: String!, $limit: Int!, $offset: Int!) {
  transfers(
    where: {account_eq: $address, blockNumber_gt: $from, blockNumber_lte: $to, transactionType_eq: $type}
    orderBy: [blockNumber_ASC, id_ASC]
    limit: $limit
    offset: $offset
  ) {
    extrinsicHash
    blockNumber
    account
    counterparty
    transactionType
    amount
    fee
    status
  }
}`
