package redpacket

import "errors"

var (
	// ErrInsufficientBalance indicates the creator's free balance is below
	// the packet total.
	ErrInsufficientBalance = errors.New("redpacket: creator balance too low")

	// ErrGreaterThanZero indicates quota, count or expires was zero.
	ErrGreaterThanZero = errors.New("redpacket: quota, count and expires must be greater than zero")

	// ErrExpired indicates a claim was attempted after the packet deadline.
	ErrExpired = errors.New("redpacket: packet expired")

	// ErrUnavailable indicates a claim was attempted on a fully-claimed packet.
	ErrUnavailable = errors.New("redpacket: packet fully claimed")

	// ErrAlreadyClaimed indicates the caller already holds a claim on the packet.
	ErrAlreadyClaimed = errors.New("redpacket: account already claimed")

	// ErrNotOwner indicates the distribute caller is not the packet owner.
	ErrNotOwner = errors.New("redpacket: caller is not the packet owner")

	// ErrAlreadyDistributed indicates distribute was called on a distributed packet.
	ErrAlreadyDistributed = errors.New("redpacket: packet already distributed")

	// ErrCannotBeDistributed indicates distribute was called before the packet
	// expired or filled up.
	ErrCannotBeDistributed = errors.New("redpacket: packet is neither expired nor fully claimed")

	// ErrPacketNotFound indicates the packet id does not exist.
	ErrPacketNotFound = errors.New("redpacket: packet not found")

	// ErrPacketExists indicates a store insert collided with an existing id.
	ErrPacketExists = errors.New("redpacket: packet id already in use")

	// ErrBadOrigin indicates the operation origin carries no signer.
	ErrBadOrigin = errors.New("redpacket: origin is not signed")
)
