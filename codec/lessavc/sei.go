/*
DESCRIPTION
  sei.go builds Supplemental Enhancement Information payloads. Only the
  user-data-unregistered message is supported.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package lessavc

// sei user-data-unregistered payload_type, per Annex D of the H.264
// specification.
const seiPayloadTypeUserDataUnregistered = 5

// UserDataUnregistered is a user-data-unregistered SEI message: a 16-byte
// UUID identifying the data's format, followed by an application-defined
// payload.
type UserDataUnregistered struct {
	UUID    [16]byte
	Payload []byte
}

// toSeiPayload concatenates the UUID and payload.
func (u UserDataUnregistered) toSeiPayload() []byte {
	result := make([]byte, 0, 16+len(u.Payload))
	result = append(result, u.UUID[:]...)
	result = append(result, u.Payload...)
	return result
}

// toRBSP encodes the message as an sei_rbsp(): payload_type (here always 5,
// so a single byte), payload_size as a run of 0xff bytes followed by the
// remainder for sizes over 255, the payload itself, then the
// rbsp_trailing_bits byte 0x80.
func (u UserDataUnregistered) toRBSP() rbspData {
	payload := u.toSeiPayload()

	size := len(payload)
	numFFBytes := 0
	for size > 255 {
		numFFBytes++
		size -= 0xff
	}

	result := make([]byte, numFFBytes+2, numFFBytes+2+len(payload)+1)
	for i := range result {
		result[i] = 0xff
	}
	result[0] = seiPayloadTypeUserDataUnregistered
	result[len(result)-1] = byte(size)

	result = append(result, payload...)
	result = append(result, 0x80) // rbsp_trailing_bits

	return rbspData{data: result}
}

// NalUnit wraps the message as a NAL unit of type 6 (SEI) with nal_ref_idc 0,
// ready for insertion ahead of the coded slice it annotates.
func (u UserDataUnregistered) NalUnit() NalUnit {
	return newNalUnit(nalRefIdcZero, nalTypeSEI, u.toRBSP())
}
