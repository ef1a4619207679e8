package metrics

// Nil-safe хелперы для бизнес-метрик
// Usecases держат *Metrics, который равен nil при выключенных метриках

// IncAppointmentCreated учитывает созданную запись
func (m *Metrics) IncAppointmentCreated(appointmentType, status string) {
	if m == nil {
		return
	}
	m.AppointmentsCreatedTotal.WithLabelValues(appointmentType, status).Inc()
}

// IncAppointmentCancelled учитывает отмененную запись
func (m *Metrics) IncAppointmentCancelled(appointmentType string) {
	if m == nil {
		return
	}
	m.AppointmentsCancelledTotal.WithLabelValues(appointmentType).Inc()
}

// IncSlotFullRejection учитывает отказ из-за заполненного слота
func (m *Metrics) IncSlotFullRejection(appointmentType string) {
	if m == nil {
		return
	}
	m.SlotFullRejectionsTotal.WithLabelValues(appointmentType).Inc()
}
