package state_native

import (
	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
)

// Field names of the beacon state container.
const (
	genesisTime                  = "genesis_time"
	genesisValidatorsRoot        = "genesis_validators_root"
	slot                         = "slot"
	fork                         = "fork"
	latestBlockHeader            = "latest_block_header"
	blockRoots                   = "block_roots"
	stateRoots                   = "state_roots"
	historicalRoots              = "historical_roots"
	eth1Data                     = "eth1_data"
	eth1DataVotes                = "eth1_data_votes"
	eth1DepositIndex             = "eth1_deposit_index"
	validators                   = "validators"
	balances                     = "balances"
	randaoMixes                  = "randao_mixes"
	slashings                    = "slashings"
	previousEpochAttestations    = "previous_epoch_attestations"
	currentEpochAttestations     = "current_epoch_attestations"
	previousEpochParticipation   = "previous_epoch_participation"
	currentEpochParticipation    = "current_epoch_participation"
	justificationBits            = "justification_bits"
	previousJustifiedCheckpoint  = "previous_justified_checkpoint"
	currentJustifiedCheckpoint   = "current_justified_checkpoint"
	finalizedCheckpoint          = "finalized_checkpoint"
	inactivityScores             = "inactivity_scores"
	currentSyncCommittee         = "current_sync_committee"
	nextSyncCommittee            = "next_sync_committee"
	latestExecutionPayloadHeader = "latest_execution_payload_header"
	nextWithdrawalIndex          = "next_withdrawal_index"
	nextWithdrawalValidatorIdx   = "next_withdrawal_validator_index"
	historicalSummaries          = "historical_summaries"
	depositReceiptsStartIndex    = "deposit_receipts_start_index"
)

var (
	ForkSchema = schema.MustContainerSchema("Fork", []schema.Field{
		{Name: "previous_version", Schema: schema.Bytes4Schema},
		{Name: "current_version", Schema: schema.Bytes4Schema},
		{Name: "epoch", Schema: schema.Uint64Schema},
	})
	CheckpointSchema = schema.MustContainerSchema("Checkpoint", []schema.Field{
		{Name: "epoch", Schema: schema.Uint64Schema},
		{Name: "root", Schema: schema.Bytes32Schema},
	})
	BeaconBlockHeaderSchema = schema.MustContainerSchema("BeaconBlockHeader", []schema.Field{
		{Name: "slot", Schema: schema.Uint64Schema},
		{Name: "proposer_index", Schema: schema.Uint64Schema},
		{Name: "parent_root", Schema: schema.Bytes32Schema},
		{Name: "state_root", Schema: schema.Bytes32Schema},
		{Name: "body_root", Schema: schema.Bytes32Schema},
	})
	Eth1DataSchema = schema.MustContainerSchema("Eth1Data", []schema.Field{
		{Name: "deposit_root", Schema: schema.Bytes32Schema},
		{Name: "deposit_count", Schema: schema.Uint64Schema},
		{Name: "block_hash", Schema: schema.Bytes32Schema},
	})
	ValidatorSchema = schema.MustContainerSchema("Validator", []schema.Field{
		{Name: "pubkey", Schema: schema.Bytes48Schema},
		{Name: "withdrawal_credentials", Schema: schema.Bytes32Schema},
		{Name: "effective_balance", Schema: schema.Uint64Schema},
		{Name: "slashed", Schema: schema.BooleanSchema},
		{Name: "activation_eligibility_epoch", Schema: schema.Uint64Schema},
		{Name: "activation_epoch", Schema: schema.Uint64Schema},
		{Name: "exit_epoch", Schema: schema.Uint64Schema},
		{Name: "withdrawable_epoch", Schema: schema.Uint64Schema},
	})
	AttestationDataSchema = schema.MustContainerSchema("AttestationData", []schema.Field{
		{Name: "slot", Schema: schema.Uint64Schema},
		{Name: "index", Schema: schema.Uint64Schema},
		{Name: "beacon_block_root", Schema: schema.Bytes32Schema},
		{Name: "source", Schema: CheckpointSchema},
		{Name: "target", Schema: CheckpointSchema},
	})
	AggregationBitsSchema    = schema.NewBitlistSchema(fieldparams.MaxValidatorsPerCommittee)
	PendingAttestationSchema = schema.MustContainerSchema("PendingAttestation", []schema.Field{
		{Name: "aggregation_bits", Schema: AggregationBitsSchema},
		{Name: "data", Schema: AttestationDataSchema},
		{Name: "inclusion_delay", Schema: schema.Uint64Schema},
		{Name: "proposer_index", Schema: schema.Uint64Schema},
	})
	SyncCommitteeSchema = schema.MustContainerSchema("SyncCommittee", []schema.Field{
		{Name: "pubkeys", Schema: schema.NewVectorSchema(schema.Bytes48Schema, fieldparams.SyncCommitteeLength)},
		{Name: "aggregate_pubkey", Schema: schema.Bytes48Schema},
	})
	HistoricalSummarySchema = schema.MustContainerSchema("HistoricalSummary", []schema.Field{
		{Name: "block_summary_root", Schema: schema.Bytes32Schema},
		{Name: "state_summary_root", Schema: schema.Bytes32Schema},
	})

	blockRootsSchema          = schema.NewVectorSchema(schema.Bytes32Schema, fieldparams.BlockRootsLength)
	stateRootsSchema          = schema.NewVectorSchema(schema.Bytes32Schema, fieldparams.StateRootsLength)
	historicalRootsSchema     = schema.NewListSchema(schema.Bytes32Schema, fieldparams.HistoricalRootsLength)
	eth1DataVotesSchema       = schema.NewListSchema(Eth1DataSchema, fieldparams.Eth1DataVotesLength)
	validatorsSchema          = schema.NewListSchema(ValidatorSchema, fieldparams.ValidatorRegistryLimit)
	balancesSchema            = schema.NewListSchema(schema.Uint64Schema, fieldparams.ValidatorRegistryLimit)
	randaoMixesSchema         = schema.NewVectorSchema(schema.Bytes32Schema, fieldparams.RandaoMixesLength)
	slashingsSchema           = schema.NewVectorSchema(schema.Uint64Schema, fieldparams.SlashingsLength)
	pendingAttestationsSchema = schema.NewListSchema(PendingAttestationSchema, fieldparams.PendingAttestationsLength)
	participationSchema       = schema.NewListSchema(schema.Uint8Schema, fieldparams.ValidatorRegistryLimit)
	inactivityScoresSchema    = schema.NewListSchema(schema.Uint64Schema, fieldparams.ValidatorRegistryLimit)
	justificationBitsSchema   = schema.NewBitvectorSchema(fieldparams.JustificationBitsLength)
	historicalSummariesSchema = schema.NewListSchema(HistoricalSummarySchema, fieldparams.HistoricalRootsLength)
)

// stateFields returns the beacon state fields of fork v in order.
func stateFields(v int) []schema.Field {
	fields := []schema.Field{
		{Name: genesisTime, Schema: schema.Uint64Schema},
		{Name: genesisValidatorsRoot, Schema: schema.Bytes32Schema},
		{Name: slot, Schema: schema.Uint64Schema},
		{Name: fork, Schema: ForkSchema},
		{Name: latestBlockHeader, Schema: BeaconBlockHeaderSchema},
		{Name: blockRoots, Schema: blockRootsSchema},
		{Name: stateRoots, Schema: stateRootsSchema},
		{Name: historicalRoots, Schema: historicalRootsSchema},
		{Name: eth1Data, Schema: Eth1DataSchema},
		{Name: eth1DataVotes, Schema: eth1DataVotesSchema},
		{Name: eth1DepositIndex, Schema: schema.Uint64Schema},
		{Name: validators, Schema: validatorsSchema},
		{Name: balances, Schema: balancesSchema},
		{Name: randaoMixes, Schema: randaoMixesSchema},
		{Name: slashings, Schema: slashingsSchema},
	}
	if v == version.Phase0 {
		fields = append(fields,
			schema.Field{Name: previousEpochAttestations, Schema: pendingAttestationsSchema},
			schema.Field{Name: currentEpochAttestations, Schema: pendingAttestationsSchema},
		)
	} else {
		fields = append(fields,
			schema.Field{Name: previousEpochParticipation, Schema: participationSchema},
			schema.Field{Name: currentEpochParticipation, Schema: participationSchema},
		)
	}
	fields = append(fields,
		schema.Field{Name: justificationBits, Schema: justificationBitsSchema},
		schema.Field{Name: previousJustifiedCheckpoint, Schema: CheckpointSchema},
		schema.Field{Name: currentJustifiedCheckpoint, Schema: CheckpointSchema},
		schema.Field{Name: finalizedCheckpoint, Schema: CheckpointSchema},
	)
	if v == version.Phase0 {
		return fields
	}
	fields = append(fields,
		schema.Field{Name: inactivityScores, Schema: inactivityScoresSchema},
		schema.Field{Name: currentSyncCommittee, Schema: SyncCommitteeSchema},
		schema.Field{Name: nextSyncCommittee, Schema: SyncCommitteeSchema},
	)
	if v == version.Altair {
		return fields
	}
	hs, err := blocks.ExecutionPayloadHeaderSchemaForVersion(v)
	if err != nil {
		// lint:nopanic -- every fork from Bellatrix on has a header schema.
		panic(err)
	}
	fields = append(fields, schema.Field{Name: latestExecutionPayloadHeader, Schema: hs})
	if v == version.Bellatrix {
		return fields
	}
	fields = append(fields,
		schema.Field{Name: nextWithdrawalIndex, Schema: schema.Uint64Schema},
		schema.Field{Name: nextWithdrawalValidatorIdx, Schema: schema.Uint64Schema},
		schema.Field{Name: historicalSummaries, Schema: historicalSummariesSchema},
	)
	if v < version.Electra {
		return fields
	}
	return append(fields, schema.Field{Name: depositReceiptsStartIndex, Schema: schema.Uint64Schema})
}

func stateSchema(v int) *schema.ContainerSchema {
	return schema.MustContainerSchema("BeaconState"+suffix(v), stateFields(v), schema.WithFactory(func(c *schema.Container) schema.Value {
		return wrapState(c, v)
	}))
}

func suffix(v int) string {
	name := version.String(v)
	return string(name[0]-'a'+'A') + name[1:]
}

var (
	BeaconStatePhase0Schema    = stateSchema(version.Phase0)
	BeaconStateAltairSchema    = stateSchema(version.Altair)
	BeaconStateBellatrixSchema = stateSchema(version.Bellatrix)
	BeaconStateCapellaSchema   = stateSchema(version.Capella)
	BeaconStateDenebSchema     = stateSchema(version.Deneb)
	BeaconStateElectraSchema   = stateSchema(version.Electra)
)
