package state

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/runtime/version"
)

// RequirePendingAttestations returns st with its pending attestation lists.
// Only Phase0 states have them.
func RequirePendingAttestations(st ReadOnlyBeaconState) (PendingAttestationsState, error) {
	if s, ok := st.(PendingAttestationsState); ok && st.Version() == version.Phase0 {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Phase0)
}

func RequireMutablePendingAttestations(m MutableBeaconState) (MutablePendingAttestationsState, error) {
	if s, ok := m.(MutablePendingAttestationsState); ok && m.Version() == version.Phase0 {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(m.Version(), version.Phase0)
}

// RequireAltair returns st as an Altair state or an UnsupportedVersionError.
func RequireAltair(st ReadOnlyBeaconState) (BeaconStateAltair, error) {
	if s, ok := st.ToVersionAltair(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Altair)
}

func RequireBellatrix(st ReadOnlyBeaconState) (BeaconStateBellatrix, error) {
	if s, ok := st.ToVersionBellatrix(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Bellatrix)
}

func RequireCapella(st ReadOnlyBeaconState) (BeaconStateCapella, error) {
	if s, ok := st.ToVersionCapella(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Capella)
}

func RequireDeneb(st ReadOnlyBeaconState) (BeaconStateDeneb, error) {
	if s, ok := st.ToVersionDeneb(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Deneb)
}

func RequireElectra(st ReadOnlyBeaconState) (BeaconStateElectra, error) {
	if s, ok := st.ToVersionElectra(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(st.Version(), version.Electra)
}

// RequireMutableAltair returns m as a mutable Altair state or an UnsupportedVersionError.
func RequireMutableAltair(m MutableBeaconState) (MutableBeaconStateAltair, error) {
	if s, ok := m.ToMutableVersionAltair(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(m.Version(), version.Altair)
}

func RequireMutableBellatrix(m MutableBeaconState) (MutableBeaconStateBellatrix, error) {
	if s, ok := m.ToMutableVersionBellatrix(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(m.Version(), version.Bellatrix)
}

func RequireMutableCapella(m MutableBeaconState) (MutableBeaconStateCapella, error) {
	if s, ok := m.ToMutableVersionCapella(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(m.Version(), version.Capella)
}

func RequireMutableElectra(m MutableBeaconState) (MutableBeaconStateElectra, error) {
	if s, ok := m.ToMutableVersionElectra(); ok {
		return s, nil
	}
	return nil, interfaces.NewUnsupportedVersionError(m.Version(), version.Electra)
}
