package testutil

// Sample JSON responses for API testing

// SampleLineStatusResponse is a trimmed live line status response
const SampleLineStatusResponse = `[
	{
		"$type": "Tfl.Api.Presentation.Entities.Line, Tfl.Api.Presentation.Entities",
		"id": "central",
		"name": "Central",
		"modeName": "tube",
		"lineStatuses": [
			{
				"statusSeverity": 10,
				"statusSeverityDescription": "Good Service",
				"validityPeriods": []
			}
		]
	},
	{
		"id": "northern",
		"name": "Northern",
		"modeName": "tube",
		"lineStatuses": [
			{
				"statusSeverity": 6,
				"statusSeverityDescription": "Severe Delays",
				"reason": "Northern Line: Severe delays due to an earlier faulty train.",
				"validityPeriods": [
					{
						"fromDate": "2024-03-01T08:15:00Z",
						"toDate": "2024-03-01T12:00:00Z",
						"isNow": true
					}
				]
			}
		]
	},
	{
		"id": "25",
		"name": "25",
		"modeName": "bus",
		"lineStatuses": [
			{
				"statusSeverity": 10,
				"statusSeverityDescription": "Good Service"
			}
		]
	}
]`

// SampleLoginResponse is a successful login payload
const SampleLoginResponse = `{
	"id": 1,
	"username": "emilys",
	"email": "emily.johnson@x.dummyjson.com",
	"firstName": "Emily",
	"lastName": "Johnson",
	"gender": "female",
	"image": "https://dummyjson.com/icon/emilys/128",
	"accessToken": "abc",
	"refreshToken": "def"
}`

// SampleLegacyLoginResponse carries the token under the older field name
const SampleLegacyLoginResponse = `{
	"id": 2,
	"username": "michaelw",
	"firstName": "Michael",
	"lastName": "Williams",
	"token": "legacy-token"
}`

// SampleTokenlessLoginResponse is a successful login without any token field
const SampleTokenlessLoginResponse = `{
	"id": 3,
	"username": "sophiab",
	"firstName": "Sophia"
}`

// SampleLoginErrorResponse is a rejected login
const SampleLoginErrorResponse = `{
	"message": "Invalid credentials"
}`

// SampleEmptyResponse is an empty JSON response
const SampleEmptyResponse = `{}`

// SampleNullResponse is what an empty live feed decodes from
const SampleNullResponse = `null`
