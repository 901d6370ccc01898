package seed

import "time"

// fixtureBase anchors every fixture timestamp.
var fixtureBase = time.Date(2026, 2, 13, 14, 48, 33, 0, time.UTC)

type userFixture struct {
	email    string
	password string
	role     string
}

var userFixtures = []userFixture{
	{"admin@atis.com", "admin123", "Admin"},
	{"operator@atis.com", "operator123", "Operator"},
	{"supervisor@atis.com", "super123", "Supervisor"},
	{"inspector@atis.com", "inspect123", "Inspector"},
}

// inspectionFixture is one scan, offsetMin minutes before fixtureBase.
// Empty plate and defects are stored as NULL.
type inspectionFixture struct {
	offsetMin  int
	plate      string
	location   string
	camera     string
	status     string
	confidence int
	defects    string
}

var inspectionFixtures = []inspectionFixture{
	{0, "BXP-8735", "Highway I-95 South - Mile 58", "CAM-002", "safe", 79, ""},
	{1, "BGL-8880", "Interstate 80 - Weigh Station", "CAM-005", "safe", 86, ""},
	{4, "DPJ-2877", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 91, "Tread Wear,Sidewall Damage,Bulge"},
	{14, "MLL-2498", "Highway 101 - Toll Plaza", "CAM-006", "safe", 84, ""},
	{24, "7DT-3323", "Highway I-95 South - Mile 58", "CAM-007", "safe", 94, ""},
	{27, "WNZ-8747", "Interstate 80 - Weigh Station", "CAM-005", "safe", 93, ""},
	{29, "", "Highway I-95 South - Mile 58", "CAM-002", "safe", 91, ""},
	{1, "JAD-J993", "Highway I-95 South - Mile 58", "CAM-001", "safe", 94, ""},
	{17, "X7X-4114", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 81, "Sidewall Damage,Cracking,Bulge"},
	{23, "KXB-0007", "Highway 101 - Toll Plaza", "CAM-006", "safe", 81, ""},
	{26, "", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 88, "Tread Wear,Sidewall Damage,Puncture"},
	{28, "THB-1995", "Interstate 80 - Weigh Station", "CAM-005", "unsafe", 86, "Puncture"},
	{39, "KDX-6325", "Interstate 80 - Weigh Station", "CAM-005", "unsafe", 81, ""},
	{42, "WTU-6244", "Highway I-95 North - Checkpoint B", "CAM-004", "safe", 92, ""},
	{5, "RNK-4421", "Route 66 West - Checkpoint C", "CAM-008", "safe", 88, ""},
	{8, "PMZ-9034", "Highway 101 - Toll Plaza", "CAM-006", "safe", 95, ""},
	{11, "GTR-1567", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 78, "Flat Spot,Under Inflation"},
	{19, "YWQ-3380", "Interstate 80 - Weigh Station", "CAM-005", "safe", 90, ""},
	{33, "FBN-7712", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 85, "Sidewall Damage,Cracking"},
	{45, "HVD-6053", "Highway I-95 South - Mile 58", "CAM-002", "safe", 97, ""},
	{55, "", "Route 66 West - Checkpoint C", "CAM-008", "unsafe", 76, "Tread Wear"},
	{63, "CVX-2910", "Highway 101 - Toll Plaza", "CAM-006", "safe", 89, ""},
	{78, "NLB-4488", "Interstate 80 - Weigh Station", "CAM-005", "safe", 92, ""},
	{90, "AKW-5519", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 82, "Bulge,Over Inflation"},
	{105, "ZJT-8830", "Route 66 East - Checkpoint A", "CAM-003", "safe", 91, ""},
	{120, "QMP-1176", "Highway I-95 South - Mile 58", "CAM-002", "safe", 87, ""},
	{146, "", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 87, "Tread Wear,Sidewall Damage,Bulge"},
	{238, "VDM-5786", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 85, "Bulge,Over Inflation,Cracking"},
	{244, "hST-1181", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 82, "Bulge"},
	{388, "MRM-2628", "Route 66 West - Checkpoint C", "CAM-008", "unsafe", 90, "Tread Wear,Sidewall Damage"},
	{441, "XPV-8558", "Highway 101 - Toll Plaza", "CAM-006", "unsafe", 88, "Sidewall Damage,Puncture,Cracking"},
	{531, "LEC-7918", "Highway 101 - Toll Plaza", "CAM-006", "unsafe", 79, "Puncture"},
	{618, "", "Route 66 West - Checkpoint C", "CAM-008", "unsafe", 84, "Tread Wear,Sidewall Damage,Bulge"},
	{780, "FXJ-0917", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 86, "Sidewall Damage,Cracking"},
	{891, "", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 83, "Bulge"},
	{950, "WBX-3341", "Highway I-95 South - Mile 58", "CAM-002", "unsafe", 80, "Flat Spot,Tread Wear"},
	{1020, "TKN-6629", "Interstate 80 - Weigh Station", "CAM-005", "unsafe", 77, "Puncture,Cracking"},
	{1100, "RGP-4450", "Route 66 West - Checkpoint C", "CAM-008", "unsafe", 83, "Sidewall Damage"},
	{1200, "", "Highway 101 - Toll Plaza", "CAM-006", "unsafe", 75, "Under Inflation,Cracking,Bulge"},
	{1350, "JNR-8817", "Highway I-95 North - Checkpoint B", "CAM-004", "unsafe", 89, "Tread Wear,Bulge"},
	{1500, "DLS-2205", "Route 66 East - Checkpoint A", "CAM-003", "unsafe", 81, "Sidewall Damage,Puncture"},
	{1620, "BYX-9903", "Highway I-95 South - Mile 58", "CAM-002", "unsafe", 74, "Flat Spot"},
	{1800, "KMH-7741", "Interstate 80 - Weigh Station", "CAM-005", "unsafe", 78, "Cracking,Over Inflation"},
	{2000, "SNP-5508", "Route 66 West - Checkpoint C", "CAM-008", "unsafe", 85, "Tread Wear,Sidewall Damage,Puncture"},
}

// alertFixture opens an alert against inspectionFixtures[index].
type alertFixture struct {
	index    int
	status   string
	response string
}

var alertFixtures = []alertFixture{
	{26, "pending", ""},
	{27, "pending", ""},
	{28, "pending", ""},
	{30, "pending", ""},
	{31, "pending", ""},
	{29, "escalated", ""},
	{32, "escalated", ""},
	{33, "escalated", ""},
	{34, "escalated", ""},
	{35, "acknowledged", "Driver notified"},
	{36, "acknowledged", "Inspection team dispatched"},
	{37, "acknowledged", "Under review"},
	{38, "acknowledged", "Fleet manager contacted"},
	{39, "resolved", "Tire replaced — cleared"},
	{40, "resolved", "False positive confirmed"},
	{41, "resolved", "Vehicle recalled to depot"},
	{42, "resolved", "Tire pressure corrected"},
	{43, "resolved", "All tires replaced on-site"},
}
