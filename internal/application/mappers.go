package application

import (
	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// ToEmployeeDTO converts a domain Employee to EmployeeDTO
func ToEmployeeDTO(employee *domain.Employee) *EmployeeDTO {
	if employee == nil {
		return nil
	}

	return &EmployeeDTO{
		EmployeeID:       employee.EmployeeID,
		Name:             employee.Name,
		Surname:          employee.Surname,
		FullName:         employee.FullName(),
		NationalID:       employee.NationalID,
		Contact:          employee.Contact,
		Address:          employee.Address,
		Gender:           employee.Gender,
		NextOfKinName:    employee.NextOfKin.Name,
		NextOfKinContact: employee.NextOfKin.Contact,
		CreatedAt:        employee.CreatedAt,
		UpdatedAt:        employee.UpdatedAt,
	}
}

// ToEmployeeDTOs converts a slice of domain Employees to EmployeeDTOs
func ToEmployeeDTOs(employees []*domain.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		if dto := ToEmployeeDTO(employee); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToScheduleDTO converts a domain Schedule to ScheduleDTO
func ToScheduleDTO(schedule *domain.Schedule) *ScheduleDTO {
	if schedule == nil {
		return nil
	}

	items := make([]ScheduleItemDTO, len(schedule.Items))
	for i, item := range schedule.Items {
		items[i] = ScheduleItemDTO{
			ItemID:         item.ItemID,
			Task:           string(item.Task),
			RequiredCount:  item.RequiredCount,
			EmployeeIDs:    item.EmployeeIDs,
			TargetMass:     item.TargetMass,
			NumberOfScales: item.NumberOfScales,
			NumberOfBales:  item.NumberOfBales,
			ClassGrades:    item.ClassGrades,
			Quantity:       item.Quantity,
		}
	}

	return &ScheduleDTO{
		ScheduleID: schedule.ScheduleID,
		Date:       schedule.Date,
		Items:      items,
		CreatedAt:  schedule.CreatedAt,
		UpdatedAt:  schedule.UpdatedAt,
	}
}

// ToScheduleDTOs converts a slice of domain Schedules to ScheduleDTOs
func ToScheduleDTOs(schedules []*domain.Schedule) []ScheduleDTO {
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		if dto := ToScheduleDTO(schedule); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// toScheduleItems converts item inputs to domain items
func toScheduleItems(inputs []ScheduleItemInput) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, len(inputs))
	for i, input := range inputs {
		items[i] = domain.ScheduleItem{
			ItemID:         input.ItemID,
			Task:           domain.TaskName(input.Task),
			RequiredCount:  input.RequiredCount,
			EmployeeIDs:    input.EmployeeIDs,
			TargetMass:     input.TargetMass,
			NumberOfScales: input.NumberOfScales,
			NumberOfBales:  input.NumberOfBales,
			ClassGrades:    input.ClassGrades,
			Quantity:       input.Quantity,
		}
	}
	return items
}

// toTaskPayload converts a payload input to the domain tagged variant
func toTaskPayload(input *TaskPayloadInput) *domain.TaskPayload {
	if input == nil {
		return nil
	}

	payload := &domain.TaskPayload{Kind: domain.PayloadKind(input.Kind)}

	for _, r := range input.ScaleReadings {
		payload.ScaleReadings = append(payload.ScaleReadings, domain.ScaleReading{
			Scale:  r.Scale,
			Mass:   r.Mass,
			Sticks: r.Sticks,
		})
	}
	for _, c := range input.Cartons {
		payload.Cartons = append(payload.Cartons, domain.CartonLine{
			CartonNumber: c.CartonNumber,
			Mass:         c.Mass,
		})
	}
	for _, m := range input.MassInputs {
		payload.MassInputs = append(payload.MassInputs, domain.MassInput{
			Label: m.Label,
			Mass:  m.Mass,
		})
	}
	for _, o := range input.OutputEntries {
		payload.OutputEntries = append(payload.OutputEntries, domain.OutputLine{
			Category: o.Category,
			Mass:     o.Mass,
		})
	}

	return payload
}

// toTaskPayloadDTO converts a domain payload back to its DTO
func toTaskPayloadDTO(payload *domain.TaskPayload) *TaskPayloadDTO {
	if payload == nil {
		return nil
	}

	dto := &TaskPayloadDTO{Kind: string(payload.Kind)}

	for _, r := range payload.ScaleReadings {
		dto.ScaleReadings = append(dto.ScaleReadings, ScaleReadingInput{
			Scale:  r.Scale,
			Mass:   r.Mass,
			Sticks: r.Sticks,
		})
	}
	for _, c := range payload.Cartons {
		dto.Cartons = append(dto.Cartons, CartonLineInput{
			CartonNumber: c.CartonNumber,
			Mass:         c.Mass,
		})
	}
	for _, m := range payload.MassInputs {
		dto.MassInputs = append(dto.MassInputs, MassInputLineInput{
			Label: m.Label,
			Mass:  m.Mass,
		})
	}
	for _, o := range payload.OutputEntries {
		dto.OutputEntries = append(dto.OutputEntries, OutputLineInput{
			Category: o.Category,
			Mass:     o.Mass,
		})
	}

	return dto
}

// ToWorkEntryDTO converts a domain WorkEntry to WorkEntryDTO
func ToWorkEntryDTO(entry *domain.WorkEntry) *WorkEntryDTO {
	if entry == nil {
		return nil
	}

	return &WorkEntryDTO{
		EntryID:     entry.EntryID,
		ScheduleID:  entry.ScheduleID,
		ItemID:      entry.ScheduleItemID,
		EmployeeID:  entry.EmployeeID,
		Quantity:    entry.Quantity,
		Remarks:     entry.Remarks,
		Payload:     toTaskPayloadDTO(entry.Payload),
		TotalSticks: entry.TotalSticks,
		Locked:      entry.Locked,
		RecordedAt:  entry.RecordedAt,
	}
}

// ToWorkEntryDTOs converts a slice of domain WorkEntries to WorkEntryDTOs
func ToWorkEntryDTOs(entries []*domain.WorkEntry) []WorkEntryDTO {
	dtos := make([]WorkEntryDTO, 0, len(entries))
	for _, entry := range entries {
		if dto := ToWorkEntryDTO(entry); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToLockedEntryDTOs converts locked assignment refs to DTOs
func ToLockedEntryDTOs(refs []domain.LockedEntryRef) []LockedEntryDTO {
	dtos := make([]LockedEntryDTO, len(refs))
	for i, ref := range refs {
		dtos[i] = LockedEntryDTO{
			ScheduleID: ref.ScheduleID,
			ItemID:     ref.ItemID,
			EmployeeID: ref.EmployeeID,
			Date:       ref.Date,
			Task:       string(ref.Task),
		}
	}
	return dtos
}

// ToPayrollReportDTO converts payroll results to a report DTO
func ToPayrollReportDTO(startDate, endDate string, payrolls []domain.EmployeePayroll) *PayrollReportDTO {
	employees := make([]EmployeePayrollDTO, len(payrolls))
	for i, payroll := range payrolls {
		lines := make([]PayrollLineDTO, len(payroll.Lines))
		for j, line := range payroll.Lines {
			lines[j] = PayrollLineDTO{
				Task:     string(line.Task),
				Date:     line.Date,
				Quantity: line.Quantity,
				Amount:   line.Amount,
			}
		}
		employees[i] = EmployeePayrollDTO{
			EmployeeID:  payroll.EmployeeID,
			FullName:    payroll.FullName,
			TotalAmount: payroll.TotalAmount,
			Lines:       lines,
		}
	}

	return &PayrollReportDTO{
		StartDate: startDate,
		EndDate:   endDate,
		Employees: employees,
	}
}

// ToDraftDTO converts a domain Draft to DraftDTO
func ToDraftDTO(draft *domain.Draft) *DraftDTO {
	if draft == nil {
		return nil
	}

	return &DraftDTO{
		Task:       string(draft.Key.Task),
		ScheduleID: draft.Key.ScheduleID,
		ItemID:     draft.Key.ItemID,
		EmployeeID: draft.Key.EmployeeID,
		Payload:    draft.Payload,
		Remarks:    draft.Remarks,
		UpdatedAt:  draft.UpdatedAt,
		ExpiresAt:  draft.ExpiresAt,
	}
}

// ToUserDTO converts a domain User to UserDTO
func ToUserDTO(user *domain.User) *UserDTO {
	if user == nil {
		return nil
	}

	return &UserDTO{
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
