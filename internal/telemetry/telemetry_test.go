package telemetry

import (
	"encoding/json"
	"testing"
)

func TestRecord_EvictsOldestBeyondCapacity(t *testing.T) {
	r := NewRecorder(3, nil)
	for i := uint64(0); i < 5; i++ {
		r.Record(Snapshot{Tick: i})
	}
	snaps := r.Snapshots()
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}
	if snaps[0].Tick != 2 || snaps[2].Tick != 4 {
		t.Errorf("ring buffer contents = %+v, want ticks [2,3,4]", snaps)
	}
}

func TestSetEnabled_DropsRecordsWhenDisabled(t *testing.T) {
	r := NewRecorder(10, nil)
	r.SetEnabled(false)
	r.Record(Snapshot{Tick: 1})
	if len(r.Snapshots()) != 0 {
		t.Errorf("disabled recorder should drop records")
	}
}

func TestReset_ClearsBufferKeepsEnabled(t *testing.T) {
	r := NewRecorder(10, nil)
	r.Record(Snapshot{Tick: 1})
	r.Reset()
	if len(r.Snapshots()) != 0 {
		t.Errorf("Reset should clear the buffer")
	}
	r.Record(Snapshot{Tick: 2})
	if len(r.Snapshots()) != 1 {
		t.Errorf("recorder should still accept records after Reset")
	}
}

func TestDumpJSON_RoundTrips(t *testing.T) {
	r := NewRecorder(10, nil)
	r.Record(Snapshot{Tick: 1, Score: 4.2, Fallen: true})

	data, err := r.DumpJSON()
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}

	var got []Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Score != 4.2 || !got[0].Fallen {
		t.Errorf("round-tripped snapshots = %+v", got)
	}
}

func TestRecordEvent_TagsEventName(t *testing.T) {
	r := NewRecorder(10, nil)
	r.RecordEvent(Snapshot{Tick: 9}, "gameEnded")
	snaps := r.Snapshots()
	if len(snaps) != 1 || snaps[0].Event != "gameEnded" {
		t.Errorf("snapshots = %+v, want one snapshot tagged gameEnded", snaps)
	}
}
