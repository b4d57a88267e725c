package main

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

// forgetHistory drops both stacks. Structural edits change which segments
// exist, so older edits may point at ids that are gone.
func (m *model) forgetHistory() {
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	if err := m.applyAction(action.Type, action.Inverse); err != nil {
		m.errorMessage = "Undo failed: " + err.Error()
		return
	}

	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	if err := m.applyAction(action.Type, action.Data); err != nil {
		m.errorMessage = "Redo failed: " + err.Error()
		return
	}

	m.undoStack = append(m.undoStack, action)
}

func (m *model) applyAction(actionType ActionType, payload interface{}) error {
	switch actionType {
	case ActionEditSegment:
		data := payload.(EditSegmentData)
		m.selected = data.ID
		return data.Params.apply(m.chain, data.ID)
	case ActionTrailCapacity:
		data := payload.(TrailCapacityData)
		m.chain.SetMaxTrails(data.Capacity)
	case ActionTickScale:
		data := payload.(TickScaleData)
		return m.chain.SetTickScale(data.Scale)
	}
	return nil
}
