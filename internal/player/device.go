package player

import (
	"fmt"
	"sync"

	"github.com/alfazet/musing/internal/apperr"
)

// DeviceStatus is one row of the device table's ordered projection, per
// spec.md §4.5 ("devices is the device table's ordered projection").
type DeviceStatus struct {
	Name    string
	Enabled bool
}

// DeviceTable tracks named output devices' enabled flags. Only the
// designated device is ever backed by a real gopxl/beep/speaker sink —
// see DESIGN.md's resolution of the multi-device open question: beep
// wraps a single process-wide sink, so additional device names exist as
// bookkeeping only, exactly as they would on a host with one sound card
// but several logical outputs configured.
type DeviceTable struct {
	mu         sync.Mutex
	order      []string
	enabled    map[string]bool
	designated string
}

func NewDeviceTable(initial string) *DeviceTable {
	return &DeviceTable{
		order:      []string{initial},
		enabled:    map[string]bool{initial: true},
		designated: initial,
	}
}

func (d *DeviceTable) Designated() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.designated
}

func (d *DeviceTable) IsEnabled(name string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.enabled[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", apperr.ErrDeviceUnknown, name)
	}
	return v, nil
}

// Set toggles name's enabled flag. If this disables the designated device,
// the caller (Player) must migrate to another enabled device or stop.
func (d *DeviceTable) Set(name string, enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.enabled[name]; !ok {
		return fmt.Errorf("%w: %s", apperr.ErrDeviceUnknown, name)
	}
	d.enabled[name] = enabled
	return nil
}

// FirstEnabledOtherThan returns an enabled device name other than exclude,
// or "" if none remain enabled.
func (d *DeviceTable) FirstEnabledOtherThan(exclude string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range d.order {
		if name != exclude && d.enabled[name] {
			return name
		}
	}
	return ""
}

func (d *DeviceTable) SetDesignated(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.designated = name
}

func (d *DeviceTable) Status() []DeviceStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DeviceStatus, len(d.order))
	for i, name := range d.order {
		out[i] = DeviceStatus{Name: name, Enabled: d.enabled[name]}
	}
	return out
}
