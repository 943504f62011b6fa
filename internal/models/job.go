package models

// Role represents the duty a party slot expects its occupant to fill
type Role string

const (
	// RoleTank indicates a slot for a tank job
	RoleTank Role = "tank"

	// RoleHealer indicates a slot for a healer job
	RoleHealer Role = "healer"

	// RoleDPS indicates a slot for a damage-dealing job
	RoleDPS Role = "dps"
)

// Job represents a playable combat job
type Job string

const (
	// Tanks
	JobPaladin    Job = "paladin"
	JobWarrior    Job = "warrior"
	JobDarkKnight Job = "dark_knight"
	JobGunbreaker Job = "gunbreaker"

	// Healers
	JobWhiteMage   Job = "white_mage"
	JobScholar     Job = "scholar"
	JobAstrologian Job = "astrologian"
	JobSage        Job = "sage"

	// Melee DPS
	JobMonk    Job = "monk"
	JobDragoon Job = "dragoon"
	JobNinja   Job = "ninja"
	JobSamurai Job = "samurai"
	JobReaper  Job = "reaper"
	JobViper   Job = "viper"

	// Ranged DPS
	JobBard      Job = "bard"
	JobMachinist Job = "machinist"
	JobDancer    Job = "dancer"

	// Caster DPS
	JobBlackMage   Job = "black_mage"
	JobSummoner    Job = "summoner"
	JobRedMage     Job = "red_mage"
	JobPictomancer Job = "pictomancer"
)

// roleForJob maps every known job to the single role it can fill
var roleForJob = map[Job]Role{
	JobPaladin:    RoleTank,
	JobWarrior:    RoleTank,
	JobDarkKnight: RoleTank,
	JobGunbreaker: RoleTank,

	JobWhiteMage:   RoleHealer,
	JobScholar:     RoleHealer,
	JobAstrologian: RoleHealer,
	JobSage:        RoleHealer,

	JobMonk:        RoleDPS,
	JobDragoon:     RoleDPS,
	JobNinja:       RoleDPS,
	JobSamurai:     RoleDPS,
	JobReaper:      RoleDPS,
	JobViper:       RoleDPS,
	JobBard:        RoleDPS,
	JobMachinist:   RoleDPS,
	JobDancer:      RoleDPS,
	JobBlackMage:   RoleDPS,
	JobSummoner:    RoleDPS,
	JobRedMage:     RoleDPS,
	JobPictomancer: RoleDPS,
}

// Role returns the role the job fills, or the empty string for an unknown job
func (j Job) Role() Role {
	return roleForJob[j]
}

// IsValid returns true if the job is a known job
func (j Job) IsValid() bool {
	_, ok := roleForJob[j]
	return ok
}

// CanFill returns true if the job satisfies the given role
func (j Job) CanFill(role Role) bool {
	return roleForJob[j] == role
}
