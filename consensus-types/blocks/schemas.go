package blocks

import (
	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
)

// Field positions shared by every payload and header flavour. Later forks
// only append fields, so an index never changes meaning.
const (
	parentHashIndex = iota
	feeRecipientIndex
	stateRootIndex
	receiptsRootIndex
	logsBloomIndex
	prevRandaoIndex
	blockNumberIndex
	gasLimitIndex
	gasUsedIndex
	timestampIndex
	extraDataIndex
	baseFeePerGasIndex
	blockHashIndex
	transactionsIndex
	withdrawalsIndex
	blobGasUsedIndex
	excessBlobGasIndex
	depositReceiptsIndex
	exitsIndex
)

var (
	// TransactionSchema is the schema of one opaque transaction.
	TransactionSchema  = schema.NewByteListSchema(fieldparams.MaxBytesPerTxLength)
	TransactionsSchema = schema.NewListSchema(TransactionSchema, fieldparams.MaxTxsPerPayloadLength)
	LogsBloomSchema    = schema.NewByteVectorSchema(fieldparams.LogsBloomLength)
	ExtraDataSchema    = schema.NewByteListSchema(fieldparams.MaxExtraDataBytes)

	WithdrawalSchema = schema.MustContainerSchema("Withdrawal", []schema.Field{
		{Name: "index", Schema: schema.Uint64Schema},
		{Name: "validator_index", Schema: schema.Uint64Schema},
		{Name: "address", Schema: schema.Bytes20Schema},
		{Name: "amount", Schema: schema.Uint64Schema},
	}, schema.WithFactory(func(c *schema.Container) schema.Value { return &Withdrawal{c} }))
	WithdrawalsSchema = schema.NewListSchema(WithdrawalSchema, fieldparams.MaxWithdrawalsPerPayload)

	DepositReceiptSchema = schema.MustContainerSchema("DepositReceipt", []schema.Field{
		{Name: "pubkey", Schema: schema.Bytes48Schema},
		{Name: "withdrawal_credentials", Schema: schema.Bytes32Schema},
		{Name: "amount", Schema: schema.Uint64Schema},
		{Name: "signature", Schema: schema.Bytes96Schema},
		{Name: "index", Schema: schema.Uint64Schema},
	}, schema.WithFactory(func(c *schema.Container) schema.Value { return &DepositReceipt{c} }))
	DepositReceiptsSchema = schema.NewListSchema(DepositReceiptSchema, fieldparams.MaxDepositReceiptsPerPayload)

	ExecutionLayerExitSchema = schema.MustContainerSchema("ExecutionLayerExit", []schema.Field{
		{Name: "source_address", Schema: schema.Bytes20Schema},
		{Name: "validator_pubkey", Schema: schema.Bytes48Schema},
	}, schema.WithFactory(func(c *schema.Container) schema.Value { return &ExecutionLayerExit{c} }))
	ExecutionLayerExitsSchema = schema.NewListSchema(ExecutionLayerExitSchema, fieldparams.MaxExecutionLayerExits)

	KzgCommitmentsSchema = schema.NewListSchema(schema.Bytes48Schema, fieldparams.MaxBlobCommitmentsPerBlock)
	BlobSchema           = schema.NewByteVectorSchema(fieldparams.BlobLength)
	BlobsSchema          = schema.NewListSchema(BlobSchema, fieldparams.MaxBlobCommitmentsPerBlock)

	BlobsBundleSchema = schema.MustContainerSchema("BlobsBundle", []schema.Field{
		{Name: "commitments", Schema: KzgCommitmentsSchema},
		{Name: "proofs", Schema: KzgCommitmentsSchema},
		{Name: "blobs", Schema: BlobsSchema},
	}, schema.WithFactory(func(c *schema.Container) schema.Value { return &BlobsBundle{c} }))
)

func executionDataFields() []schema.Field {
	return []schema.Field{
		{Name: "parent_hash", Schema: schema.Bytes32Schema},
		{Name: "fee_recipient", Schema: schema.Bytes20Schema},
		{Name: "state_root", Schema: schema.Bytes32Schema},
		{Name: "receipts_root", Schema: schema.Bytes32Schema},
		{Name: "logs_bloom", Schema: LogsBloomSchema},
		{Name: "prev_randao", Schema: schema.Bytes32Schema},
		{Name: "block_number", Schema: schema.Uint64Schema},
		{Name: "gas_limit", Schema: schema.Uint64Schema},
		{Name: "gas_used", Schema: schema.Uint64Schema},
		{Name: "timestamp", Schema: schema.Uint64Schema},
		{Name: "extra_data", Schema: ExtraDataSchema},
		{Name: "base_fee_per_gas", Schema: schema.Uint256Schema},
		{Name: "block_hash", Schema: schema.Bytes32Schema},
	}
}

// payloadFields returns the payload fields of fork v, or the header fields
// when header is set.
func payloadFields(v int, header bool) []schema.Field {
	list := func(name string, s schema.Schema) schema.Field {
		if header {
			return schema.Field{Name: name + "_root", Schema: schema.Bytes32Schema}
		}
		return schema.Field{Name: name, Schema: s}
	}
	fields := append(executionDataFields(), list("transactions", TransactionsSchema))
	if v >= version.Capella {
		fields = append(fields, list("withdrawals", WithdrawalsSchema))
	}
	if v >= version.Deneb {
		fields = append(fields,
			schema.Field{Name: "blob_gas_used", Schema: schema.Uint64Schema},
			schema.Field{Name: "excess_blob_gas", Schema: schema.Uint64Schema},
		)
	}
	if v >= version.Electra {
		fields = append(fields,
			list("deposit_receipts", DepositReceiptsSchema),
			list("exits", ExecutionLayerExitsSchema),
		)
	}
	return fields
}

func payloadSchema(v int) *schema.ContainerSchema {
	return schema.MustContainerSchema("ExecutionPayload"+suffix(v), payloadFields(v, false),
		schema.WithFactory(func(c *schema.Container) schema.Value { return wrapPayload(c, v) }))
}

func headerSchema(v int) *schema.ContainerSchema {
	return schema.MustContainerSchema("ExecutionPayloadHeader"+suffix(v), payloadFields(v, true),
		schema.WithFactory(func(c *schema.Container) schema.Value { return wrapHeader(c, v) }))
}

func suffix(v int) string {
	name := version.String(v)
	return string(name[0]-'a'+'A') + name[1:]
}

var (
	ExecutionPayloadBellatrixSchema = payloadSchema(version.Bellatrix)
	ExecutionPayloadCapellaSchema   = payloadSchema(version.Capella)
	ExecutionPayloadDenebSchema     = payloadSchema(version.Deneb)
	ExecutionPayloadElectraSchema   = payloadSchema(version.Electra)

	ExecutionPayloadHeaderBellatrixSchema = headerSchema(version.Bellatrix)
	ExecutionPayloadHeaderCapellaSchema   = headerSchema(version.Capella)
	ExecutionPayloadHeaderDenebSchema     = headerSchema(version.Deneb)
	ExecutionPayloadHeaderElectraSchema   = headerSchema(version.Electra)
)
