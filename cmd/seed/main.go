package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"badmintok/internal/database"
	"badmintok/internal/domain"
)

// Seeds a local database with demo accounts, a couple of bands, community
// categories and a handful of contests. Intended for development only.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "badmintok.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("db connect failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"contest_likes", "contests", "contest_categories",
		"post_likes", "comments", "post_images", "posts", "categories",
		"band_vote_choices", "band_vote_options", "band_votes",
		"band_post_likes", "band_comments", "band_posts",
		"band_schedule_applications", "band_schedules",
		"band_bookmarks", "band_members", "bands",
		"notifications", "user_blocks", "reports", "inquiries",
		"refresh_tokens", "profiles", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@badmintok.kr",
		PasswordHash: string(adminHash),
		ActivityName: "운영자",
		IsActive:     true,
		IsAdmin:      true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@badmintok.kr / admin123")

	users := make([]domain.User, 0, 4)
	names := []string{"셔틀이", "스매시왕", "클리어장인", "드롭퀸"}
	for i, name := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("player123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("player%d@example.com", i+1),
			PasswordHash: string(hash),
			ActivityName: name,
			IsActive:     true,
		}
		db.Create(&u)
		db.Create(&domain.Profile{
			UserID: u.ID,
			Name:   fmt.Sprintf("회원%d", i+1),
			Gender: domain.GenderUnknown,
		})
		users = append(users, u)
	}

	// ================== BANDS ==================
	log.Println("Creating bands...")

	now := time.Now()
	club := domain.Band{
		Name:                 "새벽 배드민턴 클럽",
		Description:          "매주 화/목 새벽 운동하는 직장인 클럽입니다.",
		BandType:             domain.BandClub,
		Region:               domain.RegionCapital,
		IsPublic:             true,
		JoinApprovalRequired: true,
		IsApproved:           true,
		ApprovedAt:           &now,
		ApprovedByID:         &admin.ID,
		CreatedByID:          users[0].ID,
	}
	db.Create(&club)
	db.Create(&domain.BandMember{
		BandID: club.ID,
		UserID: users[0].ID,
		Role:   domain.RoleOwner,
		Status: domain.MemberActive,
	})
	for _, u := range users[1:3] {
		db.Create(&domain.BandMember{
			BandID: club.ID,
			UserID: u.ID,
			Role:   domain.RoleMember,
			Status: domain.MemberActive,
		})
	}

	flash := domain.Band{
		Name:        "토요일 번개 복식",
		Description: "이번 주 토요일 2시, 잠실 체육관. 4명만!",
		BandType:    domain.BandFlash,
		Region:      domain.RegionCapital,
		IsPublic:    true,
		IsApproved:  true,
		ApprovedAt:  &now,
		CreatedByID: users[1].ID,
	}
	db.Create(&flash)
	db.Create(&domain.BandMember{
		BandID: flash.ID,
		UserID: users[1].ID,
		Role:   domain.RoleOwner,
		Status: domain.MemberActive,
	})

	// A group still waiting for moderation so the admin screens have data.
	pending := domain.Band{
		Name:        "부산 주말 모임",
		Description: "부산 지역 주말 소모임입니다.",
		BandType:    domain.BandGroup,
		Region:      domain.RegionBusan,
		CreatedByID: users[3].ID,
	}
	db.Create(&pending)
	db.Create(&domain.BandMember{
		BandID: pending.ID,
		UserID: users[3].ID,
		Role:   domain.RoleOwner,
		Status: domain.MemberActive,
	})

	// ================== SCHEDULES ==================
	log.Println("Creating schedules...")

	deadline := now.AddDate(0, 0, 5)
	db.Create(&domain.BandSchedule{
		BandID:              club.ID,
		CreatedByID:         users[0].ID,
		Title:               "정기 운동 (화요일)",
		Description:         "코트 4면, 셔틀콕 제공",
		Location:            "올림픽공원 제2체육관",
		StartDatetime:       now.AddDate(0, 0, 7),
		MaxParticipants:     12,
		RequiresApproval:    true,
		ApplicationDeadline: &deadline,
	})
	db.Create(&domain.BandSchedule{
		BandID:           club.ID,
		CreatedByID:      users[0].ID,
		Title:            "자유 참석 게임데이",
		Location:         "강동구민체육센터",
		StartDatetime:    now.AddDate(0, 0, 14),
		MaxParticipants:  0, // unlimited
		RequiresApproval: false,
	})

	// ================== COMMUNITY ==================
	log.Println("Creating community categories and posts...")

	categories := []domain.Category{
		{Name: "자유게시판", Slug: "free", Source: domain.SourceCommunity, IsActive: true, Order: 1},
		{Name: "장비리뷰", Slug: "gear", Source: domain.SourceCommunity, IsActive: true, Order: 2},
		{Name: "대회소식", Slug: "contest-news", Source: domain.SourceNews, IsActive: true, Order: 1},
	}
	for i := range categories {
		db.Create(&categories[i])
	}

	published := now.AddDate(0, 0, -1)
	db.Create(&domain.Post{
		AuthorID:    users[0].ID,
		CategoryID:  &categories[0].ID,
		Source:      domain.SourceCommunity,
		Title:       "초보 라켓 추천 부탁드립니다",
		Content:     "입문 3개월차인데 가성비 라켓 추천해주세요.",
		PublishedAt: &published,
		ViewCount:   42,
	})
	db.Create(&domain.Post{
		AuthorID:    users[2].ID,
		CategoryID:  &categories[1].ID,
		Source:      domain.SourceCommunity,
		Title:       "아스트록스 88D 프로 6개월 사용기",
		Content:     "헤드헤비 치고는 다루기 쉽습니다. 스매시가 확실히 묵직해요.",
		PublishedAt: &published,
		ViewCount:   128,
		LikeCount:   9,
	})

	// ================== CONTESTS ==================
	log.Println("Creating contests...")

	contestCategories := []domain.ContestCategory{
		{Name: "전국대회", Order: 1},
		{Name: "지역대회", Order: 2},
		{Name: "동호인리그", Order: 3},
	}
	for i := range contestCategories {
		db.Create(&contestCategories[i])
	}

	scheduleStart := now.AddDate(0, 2, 0).Truncate(24 * time.Hour)
	scheduleEnd := scheduleStart.AddDate(0, 0, 2)
	db.Create(&domain.Contest{
		CategoryID:        &contestCategories[0].ID,
		Title:             "제12회 전국 동호인 배드민턴 대회",
		Slug:              "national-amateur-12",
		ScheduleStart:     scheduleStart,
		ScheduleEnd:       &scheduleEnd,
		Location:          "수원실내체육관",
		EventDivision:     "남복/여복/혼복 (A~D조)",
		RegistrationStart: now.Truncate(24 * time.Hour),
		RegistrationEnd:   now.AddDate(0, 1, 0).Truncate(24 * time.Hour),
		EntryFee:          "30,000원",
		CompetitionType:   "조별 리그 후 토너먼트",
		Sponsor:           "요넥스코리아",
	})

	regionalStart := now.AddDate(0, 1, 10).Truncate(24 * time.Hour)
	db.Create(&domain.Contest{
		CategoryID:        &contestCategories[1].ID,
		Title:             "서울시장배 배드민턴 대회",
		Slug:              "seoul-mayor-cup",
		ScheduleStart:     regionalStart,
		Location:          "잠실학생체육관",
		EventDivision:     "단식/복식",
		RegistrationStart: now.AddDate(0, 0, 3).Truncate(24 * time.Hour),
		RegistrationEnd:   now.AddDate(0, 0, 24).Truncate(24 * time.Hour),
		EntryFee:          "25,000원",
	})

	log.Println("Seed completed.")
	log.Println("Admin: admin@badmintok.kr / admin123")
	log.Println("Players: player1@example.com ... player4@example.com / player123")
}
