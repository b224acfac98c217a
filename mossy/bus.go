package mossy

// Device is implemented by any memory-mapped participant on the bus.
// Membership is per-address and asked separately for reads and writes, so
// a device can expose read-only or write-only regions.
type Device interface {
	ReadableAt(address uint16) bool
	WritableAt(address uint16) bool
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Bus routes reads and writes to registered devices by address.
//
// Reads go to the first registered device claiming the address; writes fan
// out to every device claiming it, which models mirrored regions and
// multiple listeners. Registration order is dispatch priority. Overlap is
// the caller's responsibility.
type Bus struct {
	devices []Device
}

// NewBus returns an empty bus with no devices attached.
func NewBus() *Bus {
	return &Bus{}
}

// Register appends a device to the routing list. All devices must be
// registered before ticking starts; the list is not safe to mutate while
// the machine runs.
func (b *Bus) Register(device Device) {
	b.devices = append(b.devices, device)
}

// Read returns the byte from the first device readable at the address.
// An address no device claims reads as 0, an open bus rather than an
// error.
func (b *Bus) Read(address uint16) byte {
	for _, d := range b.devices {
		if d.ReadableAt(address) {
			return d.Read(address)
		}
	}
	return 0
}

// Write delivers the byte to every device writable at the address. A write
// no device claims is dropped silently.
func (b *Bus) Write(address uint16, value byte) {
	for _, d := range b.devices {
		if d.WritableAt(address) {
			d.Write(address, value)
		}
	}
}
