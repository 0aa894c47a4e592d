package viewstate

import "testing"

func checkInvariants(t *testing.T, s *State) {
	t.Helper()
	v := s.Visible()
	defaultView := v == ViewUpload || v == ViewHistoryList || v == ViewShare

	if defaultView && s.BackAction().Kind != BackNone {
		t.Errorf("%s: back slot should be empty, got %s", v, s.BackAction().Kind)
	}
	switch v {
	case ViewResult:
		if s.BackAction().Kind != BackCloseResult {
			t.Errorf("result: back kind %s", s.BackAction().Kind)
		}
		if id, ok := s.TargetID(); !ok || id != s.UploadID() {
			t.Errorf("result: target %d/%v, upload id %d", id, ok, s.UploadID())
		}
	case ViewHistoryDetail:
		if s.BackAction().Kind != BackCloseDetail {
			t.Errorf("detail: back kind %s", s.BackAction().Kind)
		}
		if id, ok := s.TargetID(); !ok || id != s.DetailID() {
			t.Errorf("detail: target %d/%v, detail id %d", id, ok, s.DetailID())
		}
	default:
		if _, ok := s.TargetID(); ok {
			t.Errorf("%s: action bar should be inactive", v)
		}
	}
}

func TestNewStartsOnUploadForm(t *testing.T) {
	s := New()
	if s.Visible() != ViewUpload || s.Header() != HeaderDefault || s.Action() != ActionNone {
		t.Errorf("got view %s header %s action %q", s.Visible(), s.Header(), s.Action())
	}
	checkInvariants(t, s)
}

func TestUploadThenCloseResult(t *testing.T) {
	s := New()
	var closed []View
	s.OnClose = func(v View) { closed = append(closed, v) }

	s.ShowResult(42)
	if s.UploadID() != 42 || s.Visible() != ViewResult {
		t.Fatalf("after upload: id %d view %s", s.UploadID(), s.Visible())
	}
	if s.Header() != HeaderResult || s.Action() != ActionAnalyze {
		t.Errorf("after upload: header %s action %s", s.Header(), s.Action())
	}
	checkInvariants(t, s)

	s.CloseResult()
	if s.UploadID() != 0 {
		t.Errorf("upload id not cleared: %d", s.UploadID())
	}
	if s.Visible() != ViewUpload || s.Header() != HeaderDefault || s.Action() != ActionNone {
		t.Errorf("after close: view %s header %s action %q", s.Visible(), s.Header(), s.Action())
	}
	if s.BackAction().Kind != BackNone {
		t.Errorf("back slot not cleared: %s", s.BackAction().Kind)
	}
	if len(closed) != 1 || closed[0] != ViewResult {
		t.Errorf("OnClose calls: %v", closed)
	}
}

func TestDetailDoesNotTouchUploadID(t *testing.T) {
	s := New()
	s.ShowResult(42)
	s.SwitchTab(TabHistory)
	s.OpenDetail(7)

	if s.UploadID() != 42 {
		t.Errorf("upload id changed to %d", s.UploadID())
	}
	if id, _ := s.TargetID(); id != 7 {
		t.Errorf("target id: got %d, want 7", id)
	}
	checkInvariants(t, s)

	s.CloseDetail()
	if s.DetailID() != 0 {
		t.Errorf("detail id not cleared: %d", s.DetailID())
	}
	if s.UploadID() != 42 {
		t.Errorf("closing detail cleared upload id")
	}
	if s.Visible() != ViewHistoryList || s.Header() != HeaderDefault || s.Action() != ActionNone {
		t.Errorf("after close: view %s header %s action %q", s.Visible(), s.Header(), s.Action())
	}
}

func TestSwitchTabRecomputesFromVisibleSubView(t *testing.T) {
	s := New()
	s.ShowResult(42)

	if reload := s.SwitchTab(TabHistory); !reload {
		t.Error("entering history should request a reload")
	}
	if s.Header() != HeaderDefault {
		t.Errorf("history list header: %s", s.Header())
	}
	checkInvariants(t, s)

	if reload := s.SwitchTab(TabAnalyze); reload {
		t.Error("entering analyze should not request a history reload")
	}
	if s.Header() != HeaderResult || s.BackAction().Kind != BackCloseResult {
		t.Errorf("analyze with result: header %s back %s", s.Header(), s.BackAction().Kind)
	}

	s.SwitchTab(TabHistory)
	s.OpenDetail(7)
	s.SwitchTab(TabAnalyze)
	s.SwitchTab(TabHistory)
	if s.Header() != HeaderDetail || s.BackAction().Kind != BackCloseDetail {
		t.Errorf("history with detail: header %s back %s", s.Header(), s.BackAction().Kind)
	}
	checkInvariants(t, s)
}

func TestBackRunsOnlyTheCurrentHandler(t *testing.T) {
	s := New()
	s.ShowResult(42)
	s.SwitchTab(TabHistory)
	s.OpenDetail(7)

	if kind := s.Back(); kind != BackCloseDetail {
		t.Errorf("back kind: got %s, want close-detail", kind)
	}
	if s.UploadID() != 42 {
		t.Error("back on detail closed the upload result")
	}
	if kind := s.Back(); kind != BackNone {
		t.Errorf("second back: got %s, want none", kind)
	}
	checkInvariants(t, s)
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	s := New()
	steps := []func(){
		func() { s.ShowResult(1) },
		func() { s.SwitchTab(TabHistory) },
		func() { s.OpenDetail(2) },
		func() { s.SwitchTab(TabAnalyze) },
		func() { s.Back() },
		func() { s.SwitchTab(TabHistory) },
		func() { s.Back() },
		func() { s.OpenDetail(3) },
		func() { s.SwitchTab(TabAnalyze) },
		func() { s.CloseResult() },
		func() { s.ShowResult(4) },
		func() { s.CloseDetail() },
	}
	for _, step := range steps {
		step()
		checkInvariants(t, s)
	}
}

func TestShareModeIsExclusive(t *testing.T) {
	s := New()
	s.EnterShareMode()
	if s.Visible() != ViewShare || s.Header() != HeaderShare {
		t.Errorf("share: view %s header %s", s.Visible(), s.Header())
	}
	s.SwitchTab(TabHistory)
	s.ShowResult(5)
	if s.Visible() != ViewShare {
		t.Errorf("share mode left via %s", s.Visible())
	}
	checkInvariants(t, s)
}
