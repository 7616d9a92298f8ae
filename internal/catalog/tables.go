package catalog

// Static reference tables. These mirror the fixed game catalogs and are
// never mutated at runtime; the weapons table itself lives in the store
// and is loaded into a Catalog at startup.

// Ref is one entry of a fixed id/key reference table
type Ref struct {
	ID  int    `json:"id"`
	Key string `json:"key"`
}

// RankedRules lists the competitive rules in canonical order. Slot
// positions in the all-time records table follow this ordering.
var RankedRules = []Ref{
	{ID: 1, Key: "splat_zones"},
	{ID: 2, Key: "tower_control"},
	{ID: 3, Key: "rainmaker"},
	{ID: 4, Key: "clam_blitz"},
}

var WeaponClasses = []Ref{
	{ID: 1, Key: "shooter"},
	{ID: 2, Key: "blaster"},
	{ID: 3, Key: "roller"},
	{ID: 4, Key: "brush"},
	{ID: 5, Key: "charger"},
	{ID: 6, Key: "slosher"},
	{ID: 7, Key: "splatling"},
	{ID: 8, Key: "maneuver"},
	{ID: 9, Key: "brella"},
}

var SpecialWeapons = []Ref{
	{ID: 0, Key: "missile"},
	{ID: 1, Key: "armor"},
	{ID: 2, Key: "splashbomb_pitcher"},
	{ID: 3, Key: "kyubanbomb_pitcher"},
	{ID: 4, Key: "quickbomb_pitcher"},
	{ID: 5, Key: "curlingbomb_pitcher"},
	{ID: 6, Key: "robotbomb_pitcher"},
	{ID: 7, Key: "presser"},
	{ID: 8, Key: "jetpack"},
	{ID: 9, Key: "chakuchi"},
	{ID: 10, Key: "amefurashi"},
	{ID: 11, Key: "sphere"},
	{ID: 12, Key: "bubble"},
	{ID: 17, Key: "nicedama"},
	{ID: 18, Key: "ultrahanko"},
}

var SubWeapons = []Ref{
	{ID: 0, Key: "splashbomb"},
	{ID: 1, Key: "kyubanbomb"},
	{ID: 2, Key: "quickbomb"},
	{ID: 3, Key: "curlingbomb"},
	{ID: 4, Key: "robotbomb"},
	{ID: 5, Key: "trap"},
	{ID: 6, Key: "sprinkler"},
	{ID: 7, Key: "poisonmist"},
	{ID: 8, Key: "pointsensor"},
	{ID: 9, Key: "splashshield"},
	{ID: 10, Key: "jumpbeacon"},
	{ID: 11, Key: "tansanbomb"},
	{ID: 12, Key: "torpedo"},
}

var Stages = []Ref{
	{ID: 0, Key: "battera"},
	{ID: 1, Key: "fujitsubo"},
	{ID: 2, Key: "gangaze"},
	{ID: 3, Key: "chozame"},
	{ID: 4, Key: "ama"},
	{ID: 5, Key: "kombu"},
	{ID: 6, Key: "manta"},
	{ID: 7, Key: "hokke"},
	{ID: 8, Key: "tachiuo"},
	{ID: 9, Key: "engawa"},
	{ID: 10, Key: "mozuku"},
	{ID: 11, Key: "bbass"},
	{ID: 12, Key: "devon"},
	{ID: 13, Key: "zatou"},
	{ID: 14, Key: "hakofugu"},
	{ID: 15, Key: "arowana"},
	{ID: 16, Key: "mongara"},
	{ID: 17, Key: "shottsuru"},
	{ID: 18, Key: "ajifry"},
	{ID: 19, Key: "otoro"},
	{ID: 20, Key: "sumeshi"},
	{ID: 21, Key: "anchovy"},
	{ID: 22, Key: "mutsugoro"},
}

func idByKey(refs []Ref, key string) (int, bool) {
	for _, r := range refs {
		if r.Key == key {
			return r.ID, true
		}
	}
	return 0, false
}

// RuleByKey resolves a rule key (e.g. "splat_zones") to its id
func RuleByKey(key string) (int, bool) {
	return idByKey(RankedRules, key)
}

// RuleKeyByID resolves a rule id to its key, or "" if unknown
func RuleKeyByID(id int) string {
	for _, r := range RankedRules {
		if r.ID == id {
			return r.Key
		}
	}
	return ""
}

// SubWeaponByKey resolves a sub weapon key to its id
func SubWeaponByKey(key string) (int, bool) {
	return idByKey(SubWeapons, key)
}

// SpecialWeaponByKey resolves a special weapon key to its id
func SpecialWeaponByKey(key string) (int, bool) {
	return idByKey(SpecialWeapons, key)
}

// WeaponClassByKey resolves a weapon class key to its id
func WeaponClassByKey(key string) (int, bool) {
	return idByKey(WeaponClasses, key)
}
