//go:build !minimal

package field_params

const (
	Preset                       = "mainnet"
	BlockRootsLength             = 8192          // SLOTS_PER_HISTORICAL_ROOT
	StateRootsLength             = 8192          // SLOTS_PER_HISTORICAL_ROOT
	RandaoMixesLength            = 65536         // EPOCHS_PER_HISTORICAL_VECTOR
	HistoricalRootsLength        = 16777216      // HISTORICAL_ROOTS_LIMIT
	ValidatorRegistryLimit       = 1099511627776 // VALIDATOR_REGISTRY_LIMIT
	Eth1DataVotesLength          = 2048          // SLOTS_PER_ETH1_VOTING_PERIOD
	PendingAttestationsLength    = 4096          // MAX_ATTESTATIONS * SLOTS_PER_EPOCH
	MaxValidatorsPerCommittee    = 2048          // MAX_VALIDATORS_PER_COMMITTEE
	SlashingsLength              = 8192          // EPOCHS_PER_SLASHINGS_VECTOR
	SyncCommitteeLength          = 512           // SYNC_COMMITTEE_SIZE
	JustificationBitsLength      = 4             // JUSTIFICATION_BITS_LENGTH
	RootLength                   = 32            // RootLength defines the byte length of a Merkle root.
	BLSSignatureLength           = 96            // BLSSignatureLength defines the byte length of a BLSSignature.
	BLSPubkeyLength              = 48            // BLSPubkeyLength defines the byte length of a BLS public key.
	MaxTxsPerPayloadLength       = 1048576       // MaxTxsPerPayloadLength defines the maximum number of transactions that can be included in a payload.
	MaxBytesPerTxLength          = 1073741824    // MaxBytesPerTxLength defines the maximum number of bytes that can be included in a transaction.
	MaxExtraDataBytes            = 32            // MaxExtraDataBytes defines the maximum length of the payload extra data.
	FeeRecipientLength           = 20            // FeeRecipientLength defines the byte length of a fee recipient.
	LogsBloomLength              = 256           // LogsBloomLength defines the byte length of a logs bloom.
	VersionLength                = 4             // VersionLength defines the byte length of a fork version number.
	SlotsPerEpoch                = 32            // SlotsPerEpoch defines the number of slots per epoch.
	MaxWithdrawalsPerPayload     = 16            // MaxWithdrawalsPerPayload defines the maximum number of withdrawals that can be included in a payload.
	MaxDepositReceiptsPerPayload = 8192          // MaxDepositReceiptsPerPayload defines the maximum number of deposit receipts in a payload.
	MaxExecutionLayerExits       = 16            // MaxExecutionLayerExits defines the maximum number of execution layer exits in a payload.
	MaxBlobCommitmentsPerBlock   = 4096          // MaxBlobCommitmentsPerBlock defines the theoretical limit of blobs can be included in a block.
	BlobLength                   = 131072        // BlobLength defines the byte length of a blob.
	KzgCommitmentSize            = 48            // KzgCommitmentSize defines the byte length of a KZG commitment.
	KzgProofSize                 = 48            // KzgProofSize defines the byte length of a KZG proof.
)
