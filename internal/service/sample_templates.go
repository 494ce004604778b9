package service

import "questionnaire_backend/internal/model"

const (
	SampleWorkplaceSafetyID = "sample-workplace-safety-inspection"
	SampleHealthScreeningID = "sample-covid-health-screening"
	SampleCustomerSurveyID  = "sample-customer-satisfaction"
	SampleVehicleCheckID    = "sample-vehicle-pre-trip-inspection"
	SampleOnboardingID      = "sample-employee-onboarding"
)

func required(message string) []model.Validation {
	return []model.Validation{{Rule: model.RuleRequired, Message: message}}
}

func showWhen(questionID string, op model.ConditionalOperator, value string) model.ConditionalLogic {
	return model.ConditionalLogic{
		Enabled:    true,
		Logic:      model.LogicAnd,
		Conditions: []model.Condition{{QuestionID: questionID, Operator: op, Value: model.Scalar(value)}},
	}
}

func binary(points float64, correct string) model.Scoring {
	return model.Scoring{Enabled: true, Type: model.ScoringBinary, Points: points, CorrectAnswer: model.Scalar(correct)}
}

// passFail 车辆检查项：选择 pass 得分
func passFail(id, label string) model.Question {
	return model.Question{
		ID:    id,
		Type:  model.QuestionMultipleChoice,
		Label: label,
		Options: []model.Option{
			{Value: "pass", Label: "Pass"},
			{Value: "fail", Label: "Fail"},
		},
		Validations: required("Please select an option"),
		Scoring:     binary(5, "pass"),
	}
}

// SampleTemplates 内置示例模板，每次调用返回新的副本
func SampleTemplates() []model.Template {
	safety := model.Template{
		Name:        "Workplace Safety Inspection",
		Description: "Comprehensive workplace safety audit template",
		Category:    "Safety",
		Tags:        model.StringList{"safety", "workplace", "inspection"},
		Version:     1,
		Sections: model.Sections{
			{ID: "section-1", Title: "General Information", Questions: []model.Question{
				{ID: "q1", Type: model.QuestionText, Label: "Inspector Name",
					HelpText:    "Enter the name of the person conducting the inspection",
					Validations: required("Inspector name is required")},
				{ID: "q2", Type: model.QuestionDate, Label: "Inspection Date", DateTimeType: "date",
					Validations: required("Inspection date is required")},
				{ID: "q3", Type: model.QuestionText, Label: "Location/Department",
					HelpText:    "Specify the location or department being inspected",
					Validations: required("Location is required")},
			}},
			{ID: "section-2", Title: "Safety Equipment", Questions: []model.Question{
				{ID: "q4", Type: model.QuestionYesNo, Label: "Are fire extinguishers accessible and properly maintained?",
					AllowNA: true, Validations: required("This question is required"), Scoring: binary(10, "yes")},
				{ID: "q5", Type: model.QuestionTextarea, Label: "Describe any issues found", Multiline: true,
					HelpText:         "Provide details about any safety equipment issues",
					ConditionalLogic: showWhen("q4", model.OperatorEquals, "no")},
				{ID: "q6", Type: model.QuestionPhoto, Label: "Upload photo of the issue",
					HelpText:         "Take a photo of any safety concerns",
					ConditionalLogic: showWhen("q4", model.OperatorEquals, "no")},
				{ID: "q7", Type: model.QuestionYesNo, Label: "Are emergency exits clearly marked and unobstructed?",
					Validations: required("This question is required"), Scoring: binary(10, "yes")},
				{ID: "q8", Type: model.QuestionCheckboxes, Label: "Which safety equipment is present?",
					Options: []model.Option{
						{Value: "first_aid", Label: "First Aid Kit"},
						{Value: "eye_wash", Label: "Eye Wash Station"},
						{Value: "safety_shower", Label: "Safety Shower"},
						{Value: "spill_kit", Label: "Spill Kit"},
						{Value: "ppe", Label: "Personal Protective Equipment"},
					},
					Scoring: model.Scoring{Enabled: true, Type: model.ScoringPartial, Points: 10,
						CorrectAnswer: model.List("first_aid", "eye_wash", "safety_shower", "spill_kit", "ppe")}},
			}},
			{ID: "section-3", Title: "Overall Assessment", Questions: []model.Question{
				{ID: "q9", Type: model.QuestionRating, Label: "Overall Safety Rating", MaxRating: 5,
					HelpText:    "Rate the overall safety condition (1-5 stars)",
					Validations: required("Rating is required"),
					Scoring:     model.Scoring{Enabled: true, Type: model.ScoringRange, Points: 5}},
				{ID: "q10", Type: model.QuestionTextarea, Label: "Additional Comments", Multiline: true,
					HelpText: "Any additional observations or recommendations"},
				{ID: "q11", Type: model.QuestionSignature, Label: "Inspector Signature",
					HelpText:    "Sign to confirm the inspection",
					Validations: required("Signature is required")},
			}},
		},
	}
	safety.ID = SampleWorkplaceSafetyID

	screening := model.Template{
		Name:        "COVID-19 Health Screening",
		Description: "Daily health screening questionnaire for employees and visitors to ensure workplace safety.",
		Category:    "Health & Safety",
		Tags:        model.StringList{"covid", "health", "screening", "workplace"},
		Version:     1,
		Sections: model.Sections{
			{ID: "section-1", Title: "Personal Information", Questions: []model.Question{
				{ID: "q1", Type: model.QuestionText, Label: "Full Name", HelpText: "Enter your full legal name",
					Validations: required("Name is required")},
				{ID: "q2", Type: model.QuestionText, Label: "Department / Company",
					Validations: required("Department is required")},
				{ID: "q3", Type: model.QuestionDate, Label: "Date of Visit", DateTimeType: "date",
					Validations: required("Date is required")},
			}},
			{ID: "section-2", Title: "Health Symptoms", Questions: []model.Question{
				{ID: "q4", Type: model.QuestionYesNo, Label: "Do you have a fever (temperature above 37.5°C / 99.5°F)?",
					Validations: required("Please answer this question"), Scoring: binary(10, "no")},
				{ID: "q5", Type: model.QuestionYesNo, Label: "Do you have a cough, sore throat, or difficulty breathing?",
					Validations: required("Please answer this question"), Scoring: binary(10, "no")},
				{ID: "q6", Type: model.QuestionYesNo, Label: "Have you experienced loss of taste or smell?",
					Validations: required("Please answer this question"), Scoring: binary(10, "no")},
				{ID: "q7", Type: model.QuestionYesNo, Label: "Have you been in close contact with anyone who tested positive for COVID-19 in the last 14 days?",
					Validations: required("Please answer this question"), Scoring: binary(10, "no")},
			}},
			{ID: "section-3", Title: "Declaration", Questions: []model.Question{
				{ID: "q8", Type: model.QuestionCheckboxes, Label: "I confirm that:",
					Options: []model.Option{
						{Value: "accurate", Label: "All information provided is accurate and complete"},
						{Value: "notify", Label: "I will notify management if my health status changes"},
						{Value: "guidelines", Label: "I agree to follow all safety guidelines"},
					},
					Validations: required("Please confirm all statements")},
				{ID: "q9", Type: model.QuestionSignature, Label: "Signature",
					HelpText:    "Please sign to confirm your declaration",
					Validations: required("Signature is required")},
			}},
		},
	}
	screening.ID = SampleHealthScreeningID

	survey := model.Template{
		Name:        "Customer Satisfaction Survey",
		Description: "Gather customer feedback and satisfaction ratings",
		Category:    "Survey",
		Tags:        model.StringList{"customer", "feedback", "satisfaction"},
		Version:     1,
		Sections: model.Sections{
			{ID: "section-1", Title: "Customer Information", Questions: []model.Question{
				{ID: "q1", Type: model.QuestionText, Label: "Name", Validations: required("Name is required")},
				{ID: "q2", Type: model.QuestionText, Label: "Email",
					Validations: []model.Validation{{Rule: model.RuleEmail, Message: "Please enter a valid email"}}},
			}},
			{ID: "section-2", Title: "Satisfaction Rating", Questions: []model.Question{
				{ID: "q3", Type: model.QuestionRating, Label: "How satisfied are you with our service?", MaxRating: 5,
					Validations: required("Rating is required"),
					Scoring:     model.Scoring{Enabled: true, Type: model.ScoringRange, Points: 5}},
				{ID: "q4", Type: model.QuestionMultipleChoice, Label: "How likely are you to recommend us?",
					Options: []model.Option{
						{Value: "1", Label: "Very Unlikely"},
						{Value: "2", Label: "Unlikely"},
						{Value: "3", Label: "Neutral"},
						{Value: "4", Label: "Likely"},
						{Value: "5", Label: "Very Likely"},
					},
					Validations: required("Please select an option"),
					Scoring: model.Scoring{Enabled: true, Type: model.ScoringWeighted, Points: 5,
						ScoreMapping: map[string]float64{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5}}},
				{ID: "q5", Type: model.QuestionTextarea, Label: "What can we improve?", Multiline: true,
					HelpText:         "Please share your suggestions",
					ConditionalLogic: showWhen("q4", model.OperatorLessThan, "4")},
			}},
		},
	}
	survey.ID = SampleCustomerSurveyID

	vehicle := model.Template{
		Name:        "Vehicle Pre-Trip Inspection",
		Description: "Daily vehicle inspection checklist to ensure safe operation and compliance with regulations.",
		Category:    "Transportation",
		Tags:        model.StringList{"vehicle", "inspection", "fleet", "transportation"},
		Version:     1,
		Sections: model.Sections{
			{ID: "section-1", Title: "Vehicle Information", Questions: []model.Question{
				{ID: "q1", Type: model.QuestionText, Label: "Driver Name", Validations: required("Driver name is required")},
				{ID: "q2", Type: model.QuestionText, Label: "Vehicle ID / License Plate", Validations: required("Vehicle ID is required")},
				{ID: "q3", Type: model.QuestionNumber, Label: "Current Odometer Reading", HelpText: "Enter in kilometers or miles",
					Validations: required("Odometer reading is required")},
				{ID: "q4", Type: model.QuestionDate, Label: "Inspection Date", DateTimeType: "date",
					Validations: required("Date is required")},
			}},
			{ID: "section-2", Title: "Exterior Inspection", Questions: []model.Question{
				passFail("q5", "Tires - Condition and pressure"),
				passFail("q6", "Lights - Headlights, brake lights, turn signals"),
				passFail("q7", "Mirrors - Clean and properly adjusted"),
				passFail("q8", "Body - No visible damage or leaks"),
			}},
			{ID: "section-3", Title: "Interior & Safety", Questions: []model.Question{
				passFail("q9", "Seatbelts - Functional"),
				passFail("q10", "Horn - Working"),
				passFail("q11", "Brakes - Responsive"),
				{ID: "q12", Type: model.QuestionYesNo, Label: "Is the first aid kit present and stocked?",
					Validations: required("Please answer this question"), Scoring: binary(5, "yes")},
			}},
			{ID: "section-4", Title: "Sign Off", Questions: []model.Question{
				{ID: "q13", Type: model.QuestionYesNo, Label: "Is this vehicle safe to operate?",
					Validations: required("Please confirm")},
				{ID: "q14", Type: model.QuestionTextarea, Label: "Additional Notes / Issues Found", Multiline: true,
					HelpText: "Document any defects or concerns"},
				{ID: "q15", Type: model.QuestionPhoto, Label: "Photo of Issues (if any)"},
				{ID: "q16", Type: model.QuestionSignature, Label: "Driver Signature",
					Validations: required("Signature is required")},
			}},
		},
	}
	vehicle.ID = SampleVehicleCheckID

	onboarding := model.Template{
		Name:        "Employee Onboarding Checklist",
		Description: "Comprehensive checklist to ensure new employees complete all onboarding requirements.",
		Category:    "Human Resources",
		Tags:        model.StringList{"hr", "onboarding", "employee", "checklist"},
		Version:     1,
		Sections: model.Sections{
			{ID: "section-1", Title: "Employee Details", Questions: []model.Question{
				{ID: "q1", Type: model.QuestionText, Label: "Employee Full Name", Validations: required("Name is required")},
				{ID: "q2", Type: model.QuestionText, Label: "Job Title", Validations: required("Job title is required")},
				{ID: "q3", Type: model.QuestionText, Label: "Department", Validations: required("Department is required")},
				{ID: "q4", Type: model.QuestionDate, Label: "Start Date", DateTimeType: "date",
					Validations: required("Start date is required")},
				{ID: "q5", Type: model.QuestionText, Label: "Manager Name", Validations: required("Manager name is required")},
			}},
			{ID: "section-2", Title: "Documentation", Questions: []model.Question{
				{ID: "q6", Type: model.QuestionCheckboxes, Label: "Required documents submitted:",
					Options: []model.Option{
						{Value: "id", Label: "Government-issued ID"},
						{Value: "tax", Label: "Tax forms completed"},
						{Value: "bank", Label: "Bank details for payroll"},
						{Value: "emergency", Label: "Emergency contact information"},
						{Value: "contract", Label: "Signed employment contract"},
					},
					Validations: required("Please check completed items")},
			}},
			{ID: "section-3", Title: "IT & Access Setup", Questions: []model.Question{
				{ID: "q7", Type: model.QuestionCheckboxes, Label: "IT setup completed:",
					Options: []model.Option{
						{Value: "email", Label: "Email account created"},
						{Value: "laptop", Label: "Laptop/computer assigned"},
						{Value: "software", Label: "Required software installed"},
						{Value: "access", Label: "System access granted"},
						{Value: "badge", Label: "Access badge issued"},
					}},
			}},
			{ID: "section-4", Title: "Training & Orientation", Questions: []model.Question{
				{ID: "q8", Type: model.QuestionCheckboxes, Label: "Training completed:",
					Options: []model.Option{
						{Value: "orientation", Label: "Company orientation"},
						{Value: "safety", Label: "Safety training"},
						{Value: "harassment", Label: "Anti-harassment training"},
						{Value: "security", Label: "Data security training"},
						{Value: "role", Label: "Role-specific training"},
					}},
				{ID: "q9", Type: model.QuestionYesNo, Label: "Has the employee been introduced to their team?",
					Validations: required("Please answer this question")},
				{ID: "q10", Type: model.QuestionYesNo, Label: "Has a 30/60/90 day plan been discussed?",
					Validations: required("Please answer this question")},
			}},
			{ID: "section-5", Title: "Acknowledgment", Questions: []model.Question{
				{ID: "q11", Type: model.QuestionTextarea, Label: "Additional Notes", Multiline: true,
					HelpText: "Any special accommodations or notes"},
				{ID: "q12", Type: model.QuestionSignature, Label: "HR Representative Signature",
					Validations: required("Signature is required")},
				{ID: "q13", Type: model.QuestionSignature, Label: "Employee Signature",
					Validations: required("Signature is required")},
			}},
		},
	}
	onboarding.ID = SampleOnboardingID

	return []model.Template{safety, screening, survey, vehicle, onboarding}
}
