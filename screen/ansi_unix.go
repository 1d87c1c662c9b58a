//go:build linux || darwin

package screen

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"tvx/geom"
)

// pollInterval bounds a blocking wait so pending resizes are noticed.
const pollInterval = 100

func (d *ANSIDriver) Init() error {
	fd := int(d.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("input is not a terminal")
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	d.state = st
	d.sig = make(chan os.Signal, 1)
	signal.Notify(d.sig, syscall.SIGWINCH)

	d.buf.WriteString("\x1b[?1049h") // alternate screen
	d.buf.WriteString("\x1b[?7l")    // no autowrap
	d.buf.WriteString("\x1b[?25l")
	if d.mouse {
		d.buf.WriteString("\x1b[?1000h\x1b[?1002h\x1b[?1006h")
	}
	d.forget()
	return d.Flush()
}

func (d *ANSIDriver) Fini() error {
	if d.state == nil {
		return nil
	}
	if d.mouse {
		d.buf.WriteString("\x1b[?1006l\x1b[?1002l\x1b[?1000l")
	}
	d.buf.WriteString("\x1b[0m\x1b[?7h\x1b[?25h\x1b[?1049l")
	ferr := d.Flush()

	signal.Stop(d.sig)
	err := term.Restore(int(d.in.Fd()), d.state)
	d.state = nil
	if err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return ferr
}

func (d *ANSIDriver) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(d.tty.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (d *ANSIDriver) PollEvent(wait bool) (Event, error) {
	for {
		if len(d.events) > 0 {
			ev := d.events[0]
			d.events = d.events[1:]
			return ev, nil
		}
		select {
		case <-d.sig:
			cols, rows, err := d.Size()
			if err != nil {
				return Event{}, err
			}
			d.forget()
			return Event{Type: EventResize, Size: geom.Vector{X: int16(cols), Y: int16(rows)}}, nil
		default:
		}

		timeout := 0
		if wait {
			timeout = pollInterval
		}
		fds := []unix.PollFd{{Fd: int32(d.in.Fd()), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeout)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return Event{}, err
		}
		if n == 0 {
			if !wait {
				return Event{}, nil
			}
			continue
		}

		var buf [256]byte
		r, err := d.in.Read(buf[:])
		if err != nil {
			return Event{}, err
		}
		d.pending = append(d.pending, buf[:r]...)
		evs, rest := parseInput(d.pending)
		d.pending = append([]byte(nil), rest...)
		d.events = append(d.events, evs...)
		if len(evs) == 0 && !wait {
			return Event{}, nil
		}
	}
}
