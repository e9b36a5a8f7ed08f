// Package device binds the codec layer to a live Comet Blue device.
//
// It knows which GATT characteristic carries which value (including the
// day and holiday tables, whose rows are addressed by incrementing the
// base UUID), which operations demand PIN authentication first, and how to
// assemble full backup snapshots and play them back. All byte-level work
// happens in internal/codec; all IO happens through a transport.Connection.
package device
