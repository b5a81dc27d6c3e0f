package sample

import (
	"log/slog"

	"github.com/jsphweid/chordsheet/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create cuts a short preview out of mf: everything from ticksOffset on, up
// to maxNotes note starts. Meta events before the offset are kept so tempo
// survives. Notes still sounding when the cut is made are released.
func Create(mf *smf.SMF, ticksOffset uint64, maxNotes int) *smf.SMF {
	var res smf.SMF
	slog.Debug("creating sample", "timeFormat", mf.TimeFormat, "ticksOffset", ticksOffset)
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastTicks uint64
		var numNoteOn int
		sounding := make(map[[2]uint8]bool)

		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			var ch, key, vel uint8
			switch {
			case evt.Message.GetNoteStart(&ch, &key, &vel):
				if absTicks < ticksOffset || numNoteOn >= maxNotes {
					continue
				}
				numNoteOn++
				sounding[[2]uint8{ch, key}] = true
			case evt.Message.GetNoteEnd(&ch, &key):
				if !sounding[[2]uint8{ch, key}] {
					continue
				}
				delete(sounding, [2]uint8{ch, key})
			case evt.Message.Is(smf.MetaEndOfTrackMsg):
				continue
			}

			at := util.Max(absTicks, ticksOffset)
			newTrack.Add(uint32(at-util.Max(lastTicks, ticksOffset)), evt.Message)
			lastTicks = at

			if numNoteOn >= maxNotes && len(sounding) == 0 {
				break
			}
		}

		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}
